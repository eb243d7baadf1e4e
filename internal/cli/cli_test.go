package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lingualearn/internal/errors"
)

type CLISuite struct {
	suite.Suite
	dir         string
	dbPath      string
	catalogPath string
}

func (s *CLISuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.dbPath = "file:" + filepath.Join(s.dir, "ll.db")
	s.catalogPath = filepath.Join("..", "catalog", "testdata", "catalog.yaml")
	s.T().Setenv("STREAK_TIMEZONE", "UTC")
	s.T().Setenv("LOG_LEVEL", "ERROR")
	s.T().Setenv("MAX_HEARTS", "5")
}

func (s *CLISuite) exec(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{
		"--store", "sqlite",
		"--db", s.dbPath,
		"--catalog", s.catalogPath,
		"--learner", "ana",
	}, args...))
	err := root.Execute()
	return out.String(), err
}

func (s *CLISuite) mustExec(args ...string) string {
	out, err := s.exec(args...)
	s.Require().NoError(err, "args=%v", args)
	return out
}

func (s *CLISuite) TestTracksOnFreshLearner() {
	out := s.mustExec("tracks")
	s.Assert().Contains(out, "Spanish")
	s.Assert().Contains(out, "0/2")
}

func (s *CLISuite) TestPathLocksLaterLessons() {
	out := s.mustExec("path", "es")
	s.Assert().Contains(out, "es-basics-1")
	s.Assert().Contains(out, "locked")

	s.Assert().Equal("unlocked\n", s.mustExec("path", "es", "1"))
	s.Assert().Equal("locked\n", s.mustExec("path", "es", "2"))

	_, err := s.exec("path", "es", "3")
	s.Assert().ErrorIs(err, errors.ErrUnknownLesson)
}

func (s *CLISuite) TestStartLockedLesson() {
	_, err := s.exec("start", "es-basics-2")
	s.Require().Error(err)
	s.Assert().ErrorIs(err, errors.ErrLessonLocked)
}

func (s *CLISuite) TestFullLessonPersistsAcrossInvocations() {
	out := s.mustExec("start", "es-basics-1")
	s.Assert().Contains(out, "Question 1/4")
	s.Assert().Contains(out, "1) Hola")

	out = s.mustExec("answer", "es-basics-1", "1", "--option", "1")
	s.Assert().Contains(out, "Correct!")
	s.Assert().Contains(out, "Question 2/4")

	out = s.mustExec("answer", "es-basics-1", "2", "--text", "  buenos DÍAS ")
	s.Assert().Contains(out, "Correct!")

	out = s.mustExec("answer", "es-basics-1", "3", "--option", "2")
	s.Assert().Contains(out, "Correct!")
	s.Assert().Contains(out, "Question 4/4")

	out = s.mustExec("answer", "es-basics-1", "4", "--spoken")
	s.Assert().Contains(out, "Lesson complete: 100%")
	s.Assert().Contains(out, "Streak: 1 day(s)")
	s.Assert().Contains(out, "Achievement unlocked: first-lesson")
	s.Assert().Contains(out, "Achievement unlocked: perfect")

	var stars map[string]int
	s.Require().NoError(json.Unmarshal([]byte(s.mustExec("stars", "es-basics-1", "--json")), &stars))
	s.Assert().Equal(3, stars["stars"])

	s.Assert().Equal("unlocked\n", s.mustExec("path", "es", "2"))

	out = s.mustExec("status")
	s.Assert().Contains(out, "Hearts:       5/5")
	s.Assert().Contains(out, "Lessons:      1/2 completed")
	s.Assert().Contains(out, "Achievements: 2/2 unlocked")
}

func (s *CLISuite) TestWrongAnswerCostsHeart() {
	s.mustExec("start", "es-basics-1")
	out := s.mustExec("answer", "es-basics-1", "1", "--option", "2")
	s.Assert().Contains(out, "Incorrect.")
	s.Assert().Contains(out, "Hearts: 4")
	s.Assert().Contains(out, "Hola is the everyday greeting.")
}

func (s *CLISuite) TestStaleQuestionRejected() {
	s.mustExec("answer", "es-basics-1", "1", "--option", "1")
	_, err := s.exec("answer", "es-basics-1", "1", "--option", "1")
	s.Assert().ErrorIs(err, errors.ErrStaleQuestion)
}

func (s *CLISuite) TestAnswerRequiresExactlyOneResponse() {
	_, err := s.exec("answer", "es-basics-1", "1")
	s.Assert().Error(err)

	_, err = s.exec("answer", "es-basics-1", "1", "--option", "1", "--spoken")
	s.Assert().Error(err)
}

func (s *CLISuite) TestReviewRestartsFromFirstQuestion() {
	s.mustExec("answer", "es-basics-1", "1", "--option", "1")
	out := s.mustExec("review", "es-basics-1", "--json")

	var session struct {
		QuestionIndex int    `json:"question_index"`
		State         string `json:"state"`
	}
	s.Require().NoError(json.Unmarshal([]byte(out), &session))
	s.Assert().Equal(0, session.QuestionIndex)
	s.Assert().Equal("in_progress", session.State)
}

func (s *CLISuite) TestAchievementsProgress() {
	out := s.mustExec("achievements")
	s.Assert().Contains(out, "first-lesson")
	s.Assert().Contains(out, "0/1")

	_, err := s.exec("achievements", "missing")
	s.Assert().ErrorIs(err, errors.ErrUnknownAchievement)
}

// writeCatalog saves a one-track catalog whose only lesson has n choice
// questions and points the suite at it.
func (s *CLISuite) writeCatalog(name string, n int) {
	var b strings.Builder
	b.WriteString("tracks:\n  - code: es\n    name: Spanish\n    lessons:\n      - id: es-1\n        title: Spanish 1\n        questions:\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "          - id: q%d\n            kind: choice\n            prompt: Question %d\n            options: [right, wrong]\n            correct_option: 0\n", i, i)
	}
	b.WriteString("achievements: []\n")

	s.catalogPath = filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(s.catalogPath, []byte(b.String()), 0o644))
}

func (s *CLISuite) TestStartAfterCatalogShrinks() {
	s.writeCatalog("long.yaml", 3)
	s.mustExec("answer", "es-1", "1", "--option", "1")
	s.mustExec("answer", "es-1", "2", "--option", "1")

	s.writeCatalog("short.yaml", 1)
	out := s.mustExec("start", "es-1")
	s.Assert().Contains(out, "Question 1/1")

	out = s.mustExec("answer", "es-1", "1", "--option", "1")
	s.Assert().Contains(out, "Lesson complete: 100%")
}

func (s *CLISuite) TestHelpAndCompletionSkipStore() {
	s.T().Setenv("REDIS_ADDR", "127.0.0.1:1")

	for _, args := range [][]string{
		{"--store", "redis", "help"},
		{"--store", "redis", "completion", "bash"},
		{"--db", s.dbPath, "help", "start"},
	} {
		var out bytes.Buffer
		root := NewRootCommand()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		s.Require().NoError(root.Execute(), "args=%v", args)
		s.Assert().NotEmpty(out.String())
	}

	_, err := os.Stat(strings.TrimPrefix(s.dbPath, "file:"))
	s.Assert().True(os.IsNotExist(err), "help must not create the database")
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lingualearn/internal/repository"
	"github.com/vytor/lingualearn/internal/repository/memory"
	"github.com/vytor/lingualearn/internal/testutil"
)

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, &testutil.ProgressRepositorySuite{
		NewRepo: func(t *testing.T, maxHearts int) repository.ProgressRepository {
			return memory.NewProgressRepository(maxHearts)
		},
	})
}

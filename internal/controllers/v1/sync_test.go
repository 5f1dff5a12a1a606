package v1_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/sync"
	"github.com/xpense-app/backend/internal/sync/memory"
)

// TestReplicatedDocumentKeepsID verifies that the mirrored document is
// the full resource. Another device replacing its collection from the
// remote store must end up with the same ids.
func (suite *TestSuiteStandard) TestReplicatedDocumentKeepsID() {
	store := memory.New()
	replicator := sync.NewReplicator(store, func(string, map[string]json.RawMessage) {}, zerolog.Nop())
	suite.Require().Nil(replicator.SwitchUser(context.Background(), "user-1", func() (sync.Snapshot, error) {
		return sync.Snapshot{}, nil
	}))

	v1.Configure(replicator, nil)
	defer v1.Configure(nil, nil)

	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Name:     "Lunch",
		Amount:   decimal.NewFromInt(250),
		Category: models.CategoryFood,
	})

	suite.Assert().Eventually(func() bool {
		docs, err := store.QueryOnce(context.Background(), "users/user-1/expenses")
		if err != nil {
			return false
		}

		raw, ok := docs[transaction.Data.ID.String()]
		if !ok {
			return false
		}

		var document models.Transaction
		if err := json.Unmarshal(raw, &document); err != nil {
			return false
		}

		return document.ID == transaction.Data.ID
	}, time.Second, 10*time.Millisecond, "the mirrored document must carry the transaction id")
}

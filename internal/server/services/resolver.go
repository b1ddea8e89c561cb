package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// resolveRecipient maps a payment identifier to the recipient's primary
// account. A PIX key match wins over an email match; the account found is
// always the owner's Corrente account, regardless of which identifier was
// used. viaPix reports which path matched, so the caller can pick the
// journal tags.
//
// The lookup runs against the handle it is given; pass the enclosing
// transaction so the resolution is consistent with the locks taken after it.
func resolveRecipient(ctx context.Context, db dbx.DBTX, m repomanager.RepositoryManager, identifier string) (acc *models.Account, viaPix bool, err error) {
	var clientID int64

	key, err := m.PixKeys(db).GetByKey(ctx, identifier)
	switch {
	case err == nil:
		clientID = key.ClientID
		viaPix = true
	case errors.Is(err, common.ErrorNotFound):
		client, cerr := m.Clients(db).GetByEmail(ctx, identifier)
		if cerr != nil {
			if errors.Is(cerr, common.ErrorNotFound) {
				return nil, false, common.ErrRecipientNotFound
			}
			return nil, false, fmt.Errorf("error resolving recipient: %w", cerr)
		}
		clientID = client.ID
	default:
		return nil, false, fmt.Errorf("error resolving recipient: %w", err)
	}

	acc, err = m.Accounts(db).GetPrimaryByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, false, common.ErrRecipientNotFound
		}
		return nil, false, fmt.Errorf("error resolving recipient account: %w", err)
	}
	return acc, viaPix, nil
}

package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
)

type lookupService struct {
	client     mes.Client
	sysOrgCode string
}

// NewLookupService serves the picker lists. Machines are listed for
// sysOrgCode.
func NewLookupService(client mes.Client, sysOrgCode string) LookupService {
	return &lookupService{client: client, sysOrgCode: sysOrgCode}
}

func (s *lookupService) Crafts(ctx context.Context, q CraftQuery) ([]domain.Option, error) {
	switch {
	case strings.TrimSpace(q.BigType) != "":
		return s.client.CraftsByBigType(ctx, q.BigType)
	case strings.TrimSpace(q.PlineCode) != "":
		return s.client.CraftsByPline(ctx, q.PlineCode)
	default:
		return s.client.CraftList(ctx)
	}
}

func (s *lookupService) Machines(ctx context.Context) ([]domain.Option, error) {
	return s.client.Machines(ctx, s.sysOrgCode)
}

func (s *lookupService) Moulds(ctx context.Context, q mes.MouldQuery) ([]domain.Option, error) {
	return s.client.Moulds(ctx, q)
}

func (s *lookupService) Parts(ctx context.Context, mouldCode string) ([]domain.Option, error) {
	return s.client.PartCodes(ctx, mouldCode)
}

func (s *lookupService) Dicts(ctx context.Context, dictType string) ([]domain.Option, error) {
	return s.client.Dicts(ctx, dictType)
}

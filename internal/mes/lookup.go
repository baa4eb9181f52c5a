package mes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// MouldQuery filters the mould lookup.
type MouldQuery struct {
	PlineCode string
	Keyword   string
}

type craftItem struct {
	CraftCode string `json:"craftCode"`
	CraftName string `json:"craftName"`
}

type codeNameItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type partItem struct {
	ImportPartCode string `json:"importPartCode"`
}

type dictItem struct {
	DictValue string `json:"dictValue"`
	DictLabel string `json:"dictLabel"`
}

func craftOption(it craftItem) domain.Option {
	return domain.Option{Value: it.CraftCode, Text: it.CraftName}
}

func codeNameOption(it codeNameItem) domain.Option {
	return domain.Option{Value: it.Code, Text: domain.CodeNameText(it.Code, it.Name)}
}

func (c *httpClient) CraftsByBigType(ctx context.Context, bigType string) ([]domain.Option, error) {
	return fetchOptions(ctx, c, "crafts:bigtype:"+bigType, request{
		method: http.MethodGet,
		path:   "/moldStandardCraft/moldStandardCraftController/getCraftByBigType/" + url.PathEscape(bigType),
	}, craftOption)
}

func (c *httpClient) CraftsByPline(ctx context.Context, plineCode string) ([]domain.Option, error) {
	return fetchOptions(ctx, c, "crafts:pline:"+plineCode, request{
		method: http.MethodGet,
		path:   "/samMesPlineCraft/samMesPlineCraftController/getCraftByPlineId/" + url.PathEscape(plineCode),
	}, craftOption)
}

func (c *httpClient) CraftList(ctx context.Context) ([]domain.Option, error) {
	return fetchOptions(ctx, c, "crafts:all", request{
		method: http.MethodGet,
		path:   "/moldStandardCraft/moldStandardCraftController/getCraftList",
	}, craftOption)
}

// Machines lists equipment of an organisation as "code(name)" options.
func (c *httpClient) Machines(ctx context.Context, sysOrgCode string) ([]domain.Option, error) {
	return fetchOptions(ctx, c, "machines:"+sysOrgCode, request{
		method: http.MethodGet,
		path:   "/fm/equipment/getMachineListByPlineForMobile",
		query:  url.Values{"sysOrgCode": {sysOrgCode}},
	}, codeNameOption)
}

// Moulds searches moulds of a production line. Keyword filters by mould code.
func (c *httpClient) Moulds(ctx context.Context, q MouldQuery) ([]domain.Option, error) {
	query := url.Values{}
	if q.PlineCode != "" {
		query.Set("plineCode", q.PlineCode)
	}
	if q.Keyword != "" {
		query.Set("moldCode", q.Keyword)
	}
	return fetchOptions(ctx, c, "moulds:"+query.Encode(), request{
		method: http.MethodGet,
		path:   "/rel/qtrel/getSamMouldInfoByProAndBz",
		query:  query,
	}, codeNameOption)
}

func (c *httpClient) PartCodes(ctx context.Context, mouldCode string) ([]domain.Option, error) {
	return fetchOptions(ctx, c, "parts:"+mouldCode, request{
		method: http.MethodGet,
		path:   "/rel/qtrel/getImportPartCodeByMouldCode/" + url.PathEscape(mouldCode),
	}, func(it partItem) domain.Option {
		return domain.Option{Value: it.ImportPartCode, Text: it.ImportPartCode}
	})
}

func (c *httpClient) Dicts(ctx context.Context, dictType string) ([]domain.Option, error) {
	return fetchOptions(ctx, c, "dicts:"+dictType, request{
		method: http.MethodGet,
		path:   "/system/dict/data/type/" + url.PathEscape(dictType),
	}, func(it dictItem) domain.Option {
		return domain.Option{Value: it.DictValue, Text: it.DictLabel}
	})
}

// fetchOptions reads a data array of T and maps it to picker options,
// consulting the Redis cache first.
func fetchOptions[T any](ctx context.Context, c *httpClient, cacheKey string, req request, toOption func(T) domain.Option) ([]domain.Option, error) {
	var opts []domain.Option
	if c.readCache(ctx, cacheKey, &opts) {
		c.observer.OnCallComplete(CallEvent{Method: req.method, Endpoint: req.path, Cached: true, Success: true})
		return opts, nil
	}

	env, err := c.call(ctx, req)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := env.decodeData(&items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", req.path, err)
	}
	opts = make([]domain.Option, 0, len(items))
	for _, it := range items {
		opts = append(opts, toOption(it))
	}
	c.writeCache(ctx, cacheKey, opts)
	return opts, nil
}

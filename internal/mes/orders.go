package mes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// WaitAssignOrders returns one page of parts orders awaiting qiandiao
// feedback.
func (c *httpClient) WaitAssignOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	query := url.Values{}
	if q.PageNum > 0 {
		query.Set("pageNum", strconv.Itoa(q.PageNum))
	}
	if q.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	setIf(query, "moldCode", q.MoldCode)
	setIf(query, "importPartCode", q.ImportPartCode)
	setIf(query, "mouldMakeOrder", q.MouldMakeOrder)
	setIf(query, "shiftChange", q.ShiftChange)

	env, err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/SamMesPartsOrderController/partsOrder/getWaitAssignOrders",
		query:  query,
	})
	if err != nil {
		return nil, err
	}

	page := &domain.OrderPage{Total: env.Total}
	if err := decodeRaw(env.Rows, &page.Rows); err != nil {
		return nil, fmt.Errorf("decoding order rows: %w", err)
	}
	return page, nil
}

func (c *httpClient) WaitAssignOrder(ctx context.Context, id string) (*domain.QiandiaoOrder, error) {
	env, err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/SamMesPartsOrderController/partsOrder/getWaitAssignOrderById/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}
	var order domain.QiandiaoOrder
	if err := env.decodeData(&order); err != nil {
		return nil, fmt.Errorf("decoding order %s: %w", id, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("order %s not found", id)
	}
	return &order, nil
}

func (c *httpClient) QianTiaoUserInfo(ctx context.Context) (*domain.QianTiaoUser, error) {
	env, err := c.call(ctx, request{method: http.MethodGet, path: "/rel/qtrel/getQianTiaoUserInfo"})
	if err != nil {
		return nil, err
	}
	var u domain.QianTiaoUser
	if err := env.decodeData(&u); err != nil {
		return nil, fmt.Errorf("decoding qiantiao user: %w", err)
	}
	return &u, nil
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

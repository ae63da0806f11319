package handlers

import (
	"time"

	dom "storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/service"
	"storefront/internal/tasks"
)

func money(amount int64, currency string) dto.MoneyResponse {
	m := dom.Money{Amount: amount, Currency: currency}
	return dto.MoneyResponse{Amount: amount, Currency: currency, Display: m.Format()}
}

func moneyPtr(m dom.Money) *dto.MoneyResponse {
	r := money(m.Amount, m.Currency)
	return &r
}

func productToResponse(p dom.Product, base string) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Kind:        string(p.Kind),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price, base),
		Stock:       p.Stock,
		WeightGrams: p.WeightGrams,
		Active:      p.Active,
		InStock:     p.Available(1),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func rateToResponse(r dom.ExchangeRate) dto.RateResponse {
	out := dto.RateResponse{Currency: r.Currency, Rate: r.Rate.String()}
	if !r.UpdatedAt.IsZero() {
		out.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

func importSimToResponse(s dom.ImportSimulation, base string) dto.ImportSimulationResponse {
	b := s.Breakdown
	out := dto.ImportSimulationResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Currency:  base,
		Rates:     importRatesToResponse(s.Rates),
		Breakdown: dto.ImportBreakdownResponse{
			Goods:     b.Goods.StringFixed(2),
			Freight:   b.Freight.StringFixed(2),
			Insurance: b.Insurance.StringFixed(2),
			CIF:       b.CIF.StringFixed(2),
			Duty:      b.Duty.StringFixed(2),
			VAT:       b.VAT.StringFixed(2),
			Handling:  b.Handling.StringFixed(2),
			Total:     b.Total.StringFixed(2),
			PerUnit:   b.PerUnit.StringFixed(2),
		},
	}
	if !s.CreatedAt.IsZero() {
		created := s.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func importRatesToResponse(r dom.ImportRates) dto.ImportRatesResponse {
	return dto.ImportRatesResponse{
		FreightPerKg:  r.FreightPerKg.String(),
		InsuranceRate: r.InsuranceRate.String(),
		DutyRate:      r.DutyRate.String(),
		VATRate:       r.VATRate.String(),
		HandlingFee:   r.HandlingFee.String(),
	}
}

func cartToResponse(cart dom.Cart, base string) dto.CartResponse {
	out := dto.CartResponse{Items: make([]dto.CartLineResponse, len(cart.Lines)), Total: money(cart.Total(), base)}
	for i, l := range cart.Lines {
		out.Items[i] = dto.CartLineResponse{
			ProductID: l.ProductID,
			Kind:      string(l.Kind),
			Name:      l.Name,
			UnitPrice: money(l.UnitPrice, base),
			Quantity:  l.Quantity,
			LineTotal: money(l.Total(), base),
			Available: l.Active && (l.Kind != dom.KindProduct || l.Stock >= l.Quantity),
		}
	}
	return out
}

func orderToResponse(o dom.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:         o.ID,
		Reference:  o.Reference.String(),
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Total:      money(o.Total, o.Currency),
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: money(it.UnitPrice, o.Currency),
			Quantity:  it.Quantity,
			LineTotal: money(it.Total(), o.Currency),
		})
	}
	return out
}

func ordersToResponses(list []dom.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, len(list))
	for i := range list {
		out[i] = orderToResponse(list[i])
	}
	return out
}

func paymentToResponse(p dom.Payment, currency string) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Amount:     money(p.Amount, currency),
		Method:     string(p.Method),
		Status:     string(p.Status),
		Reference:  p.Reference,
		RecordedBy: p.RecordedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func orderDetailToResponse(d service.OrderDetail) dto.OrderDetailResponse {
	cur := d.Order.Currency
	out := dto.OrderDetailResponse{
		OrderResponse: orderToResponse(d.Order),
		Paid:          money(d.Paid, cur),
		Balance:       money(d.Balance(), cur),
		Payments:      make([]dto.PaymentResponse, len(d.Payments)),
		History:       make([]dto.StatusChangeResponse, len(d.History)),
	}
	for i, p := range d.Payments {
		out.Payments[i] = paymentToResponse(p, cur)
	}
	for i, h := range d.History {
		out.History[i] = dto.StatusChangeResponse{
			From:      string(h.From),
			To:        string(h.To),
			ChangedBy: h.ChangedBy,
			Note:      h.Note,
			CreatedAt: h.CreatedAt,
		}
	}
	return out
}

func quoteToResponse(q dom.Quote, base string) dto.QuoteResponse {
	out := dto.QuoteResponse{
		ID:             q.ID,
		CustomerID:     q.CustomerID,
		ProductID:      q.ProductID,
		ProductName:    q.ProductName,
		Quantity:       q.Quantity,
		Status:         string(q.Status),
		OfferExpiresAt: q.OfferExpiresAt,
		OrderID:        q.OrderID,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
	if q.OfferedUnitPrice != nil {
		out.OfferedUnitPrice = moneyPtr(dom.Money{Amount: *q.OfferedUnitPrice, Currency: base})
		out.OfferTotal = moneyPtr(dom.Money{Amount: q.OfferTotal(), Currency: base})
	}
	for _, m := range q.Messages {
		out.Messages = append(out.Messages, quoteMessageToResponse(m))
	}
	return out
}

func quoteMessageToResponse(m dom.QuoteMessage) dto.QuoteMessageResponse {
	return dto.QuoteMessageResponse{ID: m.ID, AuthorID: m.AuthorID, FromAdmin: m.FromAdmin, Body: m.Body, CreatedAt: m.CreatedAt}
}

func bidToResponse(b dom.Bid, base string) dto.BidResponse {
	return dto.BidResponse{ID: b.ID, AuctionID: b.AuctionID, BidderID: b.BidderID, Amount: money(b.Amount, base), CreatedAt: b.CreatedAt}
}

func auctionToResponse(a dom.Auction, base string) dto.AuctionResponse {
	out := dto.AuctionResponse{
		ID:            a.ID,
		ProductID:     a.ProductID,
		ProductName:   a.ProductName,
		StartingPrice: money(a.StartingPrice, base),
		MinIncrement:  money(a.MinIncrement, base),
		StartsAt:      a.StartsAt,
		EndsAt:        a.EndsAt,
		Status:        string(a.Status),
		WinningBidID:  a.WinningBidID,
		OrderID:       a.OrderID,
	}
	if a.HighestBid != nil {
		b := bidToResponse(*a.HighestBid, base)
		out.HighestBid = &b
	}
	return out
}

func subscriptionToResponse(s dom.Subscription) dto.SubscriptionResponse {
	out := dto.SubscriptionResponse{
		ID:           s.ID,
		Platform:     s.Platform,
		AccountEmail: s.AccountEmail,
		MaxProfiles:  s.MaxProfiles,
		FreeProfiles: s.FreeProfiles(),
		ExpiresAt:    s.ExpiresAt,
		Status:       string(s.Status),
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	for _, p := range s.Profiles {
		out.Profiles = append(out.Profiles, profileToResponse(p))
	}
	return out
}

func profileToResponse(p dom.AccountProfile) dto.ProfileResponse {
	out := dto.ProfileResponse{
		ID:             p.ID,
		SubscriptionID: p.SubscriptionID,
		CustomerID:     p.CustomerID,
		Name:           p.Name,
		PIN:            p.PIN,
		AssignedAt:     p.AssignedAt,
		Platform:       p.Platform,
	}
	if !p.ExpiresAt.IsZero() {
		exp := p.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}

func returnToResponse(r dom.ReturnRequest) dto.ReturnResponse {
	return dto.ReturnResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		CustomerID: r.CustomerID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		AdminNote:  r.AdminNote,
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
}

func messageToResponse(m dom.Message) dto.MessageResponse {
	return dto.MessageResponse{ID: m.ID, FromAdmin: m.FromAdmin, Body: m.Body, CreatedAt: m.CreatedAt, ReadAt: m.ReadAt}
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Kind:        string(t.Kind),
		RefID:       t.RefID,
		Title:       t.Title,
		Status:      string(t.Status),
		DueAt:       t.DueAt,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func reportToResponse(r tasks.Report) dto.GenerateTasksResponse {
	out := dto.GenerateTasksResponse{Rules: make(map[string]dto.TaskCounts, len(r))}
	for kind, c := range r {
		out.Rules[string(kind)] = dto.TaskCounts(c)
	}
	out.Total = dto.TaskCounts(r.Total())
	return out
}

package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/treelot/treelotd/internal/core/certification"
	"github.com/treelot/treelotd/internal/core/market"
	"github.com/treelot/treelotd/internal/core/types"
)

type methodFunc func(params json.RawMessage) (interface{}, error)

// Handler dispatches JSON-RPC methods to the market engine.
type Handler struct {
	engine  *market.Engine
	methods map[string]methodFunc
}

// NewHandler creates a handler bound to engine with all methods registered.
func NewHandler(engine *market.Engine) *Handler {
	h := &Handler{
		engine:  engine,
		methods: make(map[string]methodFunc),
	}

	h.methods["init_contract"] = h.handleInitContract
	h.methods["certify"] = h.handleCertify
	h.methods["decertify"] = h.handleDecertify
	h.methods["add_offer"] = h.handleAddOffer
	h.methods["place_order"] = h.handlePlaceOrder
	h.methods["prepare_lots"] = h.handlePrepareLots
	h.methods["confirm_lots"] = h.handleConfirmLots
	h.methods["pay_harvest"] = h.handlePayHarvest

	h.methods["contract_info"] = h.handleContractInfo
	h.methods["offer"] = h.handleOffer
	h.methods["lot"] = h.handleLot
	h.methods["balance"] = h.handleBalance
	h.methods["certification_tier"] = h.handleCertificationTier

	return h
}

// Handle dispatches method to its registered handler.
func (h *Handler) Handle(method string, params json.RawMessage) (interface{}, error) {
	fn, ok := h.methods[method]
	if !ok {
		return nil, fmt.Errorf("method %s not found", method)
	}
	return fn(params)
}

func decodeParams(params json.RawMessage, dst interface{}) error {
	if len(params) == 0 {
		return fmt.Errorf("missing params")
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func (h *Handler) handleInitContract(params json.RawMessage) (interface{}, error) {
	var p struct {
		Admin           string `json:"admin"`
		TreesPerLot     uint64 `json:"trees_per_lot"`
		SettlementClass string `json:"settlement_class"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	admin, err := types.ParseAccountID(p.Admin)
	if err != nil {
		return nil, err
	}
	settlement, err := types.ParseClassID(p.SettlementClass)
	if err != nil {
		return nil, err
	}

	op := &market.InitContract{
		Admin:           admin,
		TreesPerLot:     p.TreesPerLot,
		SettlementClass: settlement,
	}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success"}, nil
}

func (h *Handler) handleCertify(params json.RawMessage) (interface{}, error) {
	var p struct {
		Admin   string `json:"admin"`
		Manager string `json:"manager"`
		Tier    uint8  `json:"tier"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	admin, err := types.ParseAccountID(p.Admin)
	if err != nil {
		return nil, err
	}
	manager, err := types.ParseAccountID(p.Manager)
	if err != nil {
		return nil, err
	}

	op := &market.Certify{Admin: admin, Manager: manager, NewTier: certification.Tier(p.Tier)}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success", "tier": op.NewTier.String()}, nil
}

func (h *Handler) handleDecertify(params json.RawMessage) (interface{}, error) {
	var p struct {
		Admin   string `json:"admin"`
		Manager string `json:"manager"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	admin, err := types.ParseAccountID(p.Admin)
	if err != nil {
		return nil, err
	}
	manager, err := types.ParseAccountID(p.Manager)
	if err != nil {
		return nil, err
	}

	op := &market.Decertify{Admin: admin, Manager: manager}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success"}, nil
}

func (h *Handler) handleAddOffer(params json.RawMessage) (interface{}, error) {
	var p struct {
		Admin    string `json:"admin"`
		Location string `json:"location"`
		Variety  string `json:"variety"`
		Price    string `json:"price"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	admin, err := types.ParseAccountID(p.Admin)
	if err != nil {
		return nil, err
	}

	op := &market.AddOffer{Admin: admin, Location: p.Location, Variety: p.Variety, Price: p.Price}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status": "success",
		"index":  op.Index,
		"class":  op.Class.String(),
	}, nil
}

func (h *Handler) handlePlaceOrder(params json.RawMessage) (interface{}, error) {
	var p struct {
		Buyer      string `json:"buyer"`
		OfferIndex uint64 `json:"offer_index"`
		OfferClass string `json:"offer_class"`
		Quantity   uint64 `json:"quantity"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	buyer, err := types.ParseAccountID(p.Buyer)
	if err != nil {
		return nil, err
	}
	offerClass, err := types.ParseClassID(p.OfferClass)
	if err != nil {
		return nil, err
	}

	op := &market.PlaceOrder{
		Buyer:      buyer,
		OfferIndex: p.OfferIndex,
		OfferClass: offerClass,
		Quantity:   p.Quantity,
	}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success", "total": op.Total}, nil
}

func (h *Handler) handlePrepareLots(params json.RawMessage) (interface{}, error) {
	var p struct {
		Manager    string `json:"manager"`
		Buyer      string `json:"buyer"`
		OrderIndex uint64 `json:"order_index"`
		OrderClass string `json:"order_class"`
		Quantity   uint64 `json:"quantity"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	manager, err := types.ParseAccountID(p.Manager)
	if err != nil {
		return nil, err
	}
	buyer, err := types.ParseAccountID(p.Buyer)
	if err != nil {
		return nil, err
	}
	orderClass, err := types.ParseClassID(p.OrderClass)
	if err != nil {
		return nil, err
	}

	op := &market.PrepareLots{
		Manager:    manager,
		Buyer:      buyer,
		OrderIndex: p.OrderIndex,
		OrderClass: orderClass,
		Quantity:   p.Quantity,
	}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status":    "success",
		"lot_index": op.LotIndex,
		"lot_class": op.LotClass.String(),
		"advance":   op.Advance,
	}, nil
}

func (h *Handler) handleConfirmLots(params json.RawMessage) (interface{}, error) {
	var p struct {
		Admin      string `json:"admin"`
		Confirmed  bool   `json:"confirmed"`
		OfferIndex uint64 `json:"offer_index"`
		OrderClass string `json:"order_class"`
		LotIndex   uint64 `json:"lot_index"`
		LotClass   string `json:"lot_class"`
		Manager    string `json:"manager"`
		Buyer      string `json:"buyer"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	admin, err := types.ParseAccountID(p.Admin)
	if err != nil {
		return nil, err
	}
	manager, err := types.ParseAccountID(p.Manager)
	if err != nil {
		return nil, err
	}
	buyer, err := types.ParseAccountID(p.Buyer)
	if err != nil {
		return nil, err
	}
	orderClass, err := types.ParseClassID(p.OrderClass)
	if err != nil {
		return nil, err
	}
	lotClass, err := types.ParseClassID(p.LotClass)
	if err != nil {
		return nil, err
	}

	op := &market.ConfirmLots{
		Admin:      admin,
		Confirmed:  p.Confirmed,
		OfferIndex: p.OfferIndex,
		OrderClass: orderClass,
		LotIndex:   p.LotIndex,
		LotClass:   lotClass,
		Manager:    manager,
		Buyer:      buyer,
	}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success", "confirmed": p.Confirmed}, nil
}

func (h *Handler) handlePayHarvest(params json.RawMessage) (interface{}, error) {
	var p struct {
		Payer      string `json:"payer"`
		LotIndex   uint64 `json:"lot_index"`
		LotClass   string `json:"lot_class"`
		Manager    string `json:"manager"`
		Buyer      string `json:"buyer"`
		HarvestFee uint64 `json:"harvest_fee"`
		Profit     uint64 `json:"profit"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	payer, err := types.ParseAccountID(p.Payer)
	if err != nil {
		return nil, err
	}
	manager, err := types.ParseAccountID(p.Manager)
	if err != nil {
		return nil, err
	}
	buyer, err := types.ParseAccountID(p.Buyer)
	if err != nil {
		return nil, err
	}
	lotClass, err := types.ParseClassID(p.LotClass)
	if err != nil {
		return nil, err
	}

	op := &market.PayHarvest{
		Payer:      payer,
		LotIndex:   p.LotIndex,
		LotClass:   lotClass,
		Manager:    manager,
		Buyer:      buyer,
		HarvestFee: p.HarvestFee,
		Profit:     p.Profit,
	}
	if err := h.engine.Apply(op); err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success"}, nil
}

func (h *Handler) handleContractInfo(params json.RawMessage) (interface{}, error) {
	var result map[string]interface{}
	var viewErr error
	h.engine.View(func(st *market.State) {
		if st.Contract == nil {
			viewErr = market.ErrContractNotInitialized
			return
		}
		c := st.Contract
		result = map[string]interface{}{
			"admin":               c.Admin.String(),
			"authority":           c.Authority.String(),
			"trees_per_lot":       c.TreesPerLot,
			"certification_class": c.CertificationClass.String(),
			"settlement_class":    c.SettlementClass.String(),
			"offers":              st.Offers.Tail(),
			"lots":                st.Lots.Tail(),
		}
	})
	return result, viewErr
}

func (h *Handler) handleOffer(params json.RawMessage) (interface{}, error) {
	var p struct {
		Index uint64 `json:"index"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	var result map[string]interface{}
	var viewErr error
	h.engine.View(func(st *market.State) {
		offer, err := st.Offers.Get(p.Index)
		if err != nil {
			viewErr = err
			return
		}
		location, _ := st.Book.MetadataValue(offer.Class, market.MetaLocation)
		variety, _ := st.Book.MetadataValue(offer.Class, market.MetaVariety)
		price, _ := st.Book.MetadataValue(offer.Class, market.MetaPrice)
		result = map[string]interface{}{
			"index":    p.Index,
			"class":    offer.Class.String(),
			"location": location,
			"variety":  variety,
			"price":    price,
		}
	})
	return result, viewErr
}

func (h *Handler) handleLot(params json.RawMessage) (interface{}, error) {
	var p struct {
		Index uint64 `json:"index"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	var result map[string]interface{}
	var viewErr error
	h.engine.View(func(st *market.State) {
		lot, err := st.Lots.Get(p.Index)
		if err != nil {
			viewErr = err
			return
		}
		manager, _ := st.Book.MetadataValue(lot.Class, market.MetaManager)
		state, _ := st.Book.MetadataValue(lot.Class, market.MetaState)
		result = map[string]interface{}{
			"index":          p.Index,
			"class":          lot.Class.String(),
			"price_per_tree": lot.OriginalPricePerTree,
			"manager":        manager,
			"state":          state,
			"supply":         st.Book.Supply(lot.Class),
		}
	})
	return result, viewErr
}

func (h *Handler) handleBalance(params json.RawMessage) (interface{}, error) {
	var p struct {
		Account string `json:"account"`
		Class   string `json:"class"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	account, err := types.ParseAccountID(p.Account)
	if err != nil {
		return nil, err
	}
	class, err := types.ParseClassID(p.Class)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	h.engine.View(func(st *market.State) {
		result = map[string]interface{}{
			"account": p.Account,
			"class":   p.Class,
			"balance": st.Book.Balance(class, account),
			"frozen":  st.Book.Frozen(class, account),
		}
	})
	return result, nil
}

func (h *Handler) handleCertificationTier(params json.RawMessage) (interface{}, error) {
	var p struct {
		Manager string `json:"manager"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	manager, err := types.ParseAccountID(p.Manager)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	var viewErr error
	h.engine.View(func(st *market.State) {
		if st.Contract == nil {
			viewErr = market.ErrContractNotInitialized
			return
		}
		balance := st.Book.Balance(st.Contract.CertificationClass, manager)
		tier, ok := certification.FromBalance(balance)
		if !ok {
			viewErr = fmt.Errorf("balance %d maps to no certification tier", balance)
			return
		}
		result = map[string]interface{}{
			"manager": p.Manager,
			"tier":    uint8(tier),
			"name":    tier.String(),
		}
	})
	return result, viewErr
}

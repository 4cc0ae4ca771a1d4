package file

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

// document is the on-disk layout: a single JSON object holding every
// record and the persisted id counters.
type document struct {
	Funds            []fundRecord       `json:"funds"`
	Investments      []investmentRecord `json:"investments"`
	Swaps            []swapRecord       `json:"swaps"`
	LastFundID       int64              `json:"lastFundId"`
	LastInvestmentID int64              `json:"lastInvestmentId"`
	LastSwapID       int64              `json:"lastSwapId"`
}

type fundRecord struct {
	ID                   string        `json:"id"`
	FundName             string        `json:"fundName"`
	FundSymbol           string        `json:"fundSymbol"`
	VaultProxy           string        `json:"vaultProxy"`
	ComptrollerProxy     string        `json:"comptrollerProxy"`
	DenominationAsset    string        `json:"denominationAsset"`
	Creator              string        `json:"creator"`
	TxHash               string        `json:"txHash"`
	EntranceFeePercent   scaledDecimal `json:"entranceFeePercent"`
	EntranceFeeRecipient string        `json:"entranceFeeRecipient"`
	Status               string        `json:"status"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`

	// Extra holds members this version does not model, such as the
	// managementFee and performanceFee of older documents. They are written
	// back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// fundFields has the fields of fundRecord without its JSON methods.
type fundFields fundRecord

var knownFundKeys = jsonKeys(fundFields{})

func (r *fundRecord) UnmarshalJSON(data []byte) error {
	var fields fundFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := unknownMembers(data, knownFundKeys)
	if err != nil {
		return err
	}
	*r = fundRecord(fields)
	r.Extra = extra
	return nil
}

func (r fundRecord) MarshalJSON() ([]byte, error) {
	return withExtra(fundFields(r), r.Extra)
}

type investmentRecord struct {
	ID              string        `json:"id"`
	FundID          string        `json:"fundId"`
	FundName        string        `json:"fundName"`
	FundSymbol      string        `json:"fundSymbol"`
	InvestorAddress string        `json:"investorAddress"`
	Type            string        `json:"type"`
	Amount          scaledDecimal `json:"amount"`
	Shares          scaledDecimal `json:"shares"`
	SharePrice      scaledDecimal `json:"sharePrice"`
	TxHash          string        `json:"txHash"`
	Timestamp       time.Time     `json:"timestamp"`
	Status          string        `json:"status"`
}

type swapRecord struct {
	ID         string        `json:"id"`
	FundID     string        `json:"fundId"`
	VaultProxy string        `json:"vaultProxy"`
	FromToken  string        `json:"fromToken"`
	ToToken    string        `json:"toToken"`
	FromAmount scaledDecimal `json:"fromAmount"`
	ToAmount   scaledDecimal `json:"toAmount"`
	TxHash     string        `json:"txHash"`
	Initiator  string        `json:"initiator"`
	Timestamp  time.Time     `json:"timestamp"`
	Status     string        `json:"status"`
}

// scaledDecimal is stored as a JSON string that keeps trailing zeros, so a
// record written as "1000.50" reads back as "1000.50". Plain JSON numbers
// from older documents are accepted on read.
type scaledDecimal struct {
	decimal.Decimal
}

func (d scaledDecimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(domain.FormatDecimal(d.Decimal))
}

// jsonKeys lists the member names v marshals to.
func jsonKeys(v any) map[string]struct{} {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		panic(err)
	}
	keys := make(map[string]struct{}, len(members))
	for k := range members {
		keys[k] = struct{}{}
	}
	return keys
}

// unknownMembers returns the members of the object in data whose names are not in known.
func unknownMembers(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	for k := range members {
		if _, ok := known[k]; ok {
			delete(members, k)
		}
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members, nil
}

// withExtra marshals v and adds the extra members it does not already set.
func withExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := members[k]; !ok {
			members[k] = raw
		}
	}
	return json.Marshal(members)
}

// legacyCounters picks up documents written before per-kind counters existed.
type legacyCounters struct {
	LastID     *int64 `json:"lastId"`
	LastFundID *int64 `json:"lastFundId"`
}

func decodeDocument(data []byte) (*document, error) {
	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}

	var legacy legacyCounters
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	if legacy.LastFundID == nil && legacy.LastID != nil {
		doc.LastFundID = *legacy.LastID
	}

	doc.normalize()
	return doc, nil
}

// normalize fills defaults and keeps every counter at or above the highest id
// already in use, so a hand-edited or legacy file never reissues an id.
func (d *document) normalize() {
	if d.Funds == nil {
		d.Funds = []fundRecord{}
	}
	if d.Investments == nil {
		d.Investments = []investmentRecord{}
	}
	if d.Swaps == nil {
		d.Swaps = []swapRecord{}
	}

	for i := range d.Funds {
		if d.Funds[i].Status == "" {
			d.Funds[i].Status = string(domain.FundStatusActive)
		}
		d.LastFundID = maxID(d.LastFundID, d.Funds[i].ID)
	}
	for i := range d.Investments {
		if d.Investments[i].Status == "" {
			d.Investments[i].Status = string(domain.RecordCompleted)
		}
		d.LastInvestmentID = maxID(d.LastInvestmentID, d.Investments[i].ID)
	}
	for i := range d.Swaps {
		if d.Swaps[i].Status == "" {
			d.Swaps[i].Status = string(domain.RecordCompleted)
		}
		d.LastSwapID = maxID(d.LastSwapID, d.Swaps[i].ID)
	}
}

func (d *document) clone() *document {
	return &document{
		Funds:            append([]fundRecord{}, d.Funds...),
		Investments:      append([]investmentRecord{}, d.Investments...),
		Swaps:            append([]swapRecord{}, d.Swaps...),
		LastFundID:       d.LastFundID,
		LastInvestmentID: d.LastInvestmentID,
		LastSwapID:       d.LastSwapID,
	}
}

func (d *document) findFund(id string) int {
	for i := range d.Funds {
		if d.Funds[i].ID == id {
			return i
		}
	}
	return -1
}

func fundToRecord(f *domain.Fund) fundRecord {
	return fundRecord{
		ID:                   f.ID,
		FundName:             f.FundName,
		FundSymbol:           f.FundSymbol,
		VaultProxy:           f.VaultProxy,
		ComptrollerProxy:     f.ComptrollerProxy,
		DenominationAsset:    f.DenominationAsset,
		Creator:              f.Creator,
		TxHash:               f.TxHash,
		EntranceFeePercent:   scaledDecimal{f.EntranceFeePercent},
		EntranceFeeRecipient: f.EntranceFeeRecipient,
		Status:               string(f.Status),
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
	}
}

func (r fundRecord) toDomain() *domain.Fund {
	return &domain.Fund{
		ID:                   r.ID,
		FundName:             r.FundName,
		FundSymbol:           r.FundSymbol,
		VaultProxy:           r.VaultProxy,
		ComptrollerProxy:     r.ComptrollerProxy,
		DenominationAsset:    r.DenominationAsset,
		Creator:              r.Creator,
		TxHash:               r.TxHash,
		EntranceFeePercent:   r.EntranceFeePercent.Decimal,
		EntranceFeeRecipient: r.EntranceFeeRecipient,
		Status:               domain.FundStatus(r.Status),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func investmentToRecord(inv *domain.Investment) investmentRecord {
	return investmentRecord{
		ID:              inv.ID,
		FundID:          inv.FundID,
		FundName:        inv.FundName,
		FundSymbol:      inv.FundSymbol,
		InvestorAddress: inv.InvestorAddress,
		Type:            string(inv.Type),
		Amount:          scaledDecimal{inv.Amount},
		Shares:          scaledDecimal{inv.Shares},
		SharePrice:      scaledDecimal{inv.SharePrice},
		TxHash:          inv.TxHash,
		Timestamp:       inv.Timestamp,
		Status:          string(inv.Status),
	}
}

func (r investmentRecord) toDomain() *domain.Investment {
	return &domain.Investment{
		ID:              r.ID,
		FundID:          r.FundID,
		FundName:        r.FundName,
		FundSymbol:      r.FundSymbol,
		InvestorAddress: r.InvestorAddress,
		Type:            domain.InvestmentType(r.Type),
		Amount:          r.Amount.Decimal,
		Shares:          r.Shares.Decimal,
		SharePrice:      r.SharePrice.Decimal,
		TxHash:          r.TxHash,
		Timestamp:       r.Timestamp,
		Status:          domain.RecordStatus(r.Status),
	}
}

func swapToRecord(s *domain.Swap) swapRecord {
	return swapRecord{
		ID:         s.ID,
		FundID:     s.FundID,
		VaultProxy: s.VaultProxy,
		FromToken:  s.FromToken,
		ToToken:    s.ToToken,
		FromAmount: scaledDecimal{s.FromAmount},
		ToAmount:   scaledDecimal{s.ToAmount},
		TxHash:     s.TxHash,
		Initiator:  s.Initiator,
		Timestamp:  s.Timestamp,
		Status:     string(s.Status),
	}
}

func (r swapRecord) toDomain() *domain.Swap {
	return &domain.Swap{
		ID:         r.ID,
		FundID:     r.FundID,
		VaultProxy: r.VaultProxy,
		FromToken:  r.FromToken,
		ToToken:    r.ToToken,
		FromAmount: r.FromAmount.Decimal,
		ToAmount:   r.ToAmount.Decimal,
		TxHash:     r.TxHash,
		Initiator:  r.Initiator,
		Timestamp:  r.Timestamp,
		Status:     domain.RecordStatus(r.Status),
	}
}

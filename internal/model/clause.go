package model

type ClauseSlot string

const (
	SlotAcceptance   ClauseSlot = "acceptance"
	SlotWarranty     ClauseSlot = "warranty"
	SlotIPRights     ClauseSlot = "ipRights"
	SlotCancellation ClauseSlot = "cancellation"
	SlotTermination  ClauseSlot = "termination"
	SlotLiability    ClauseSlot = "liability"
)

// ClauseSlots is the fixed slot order used for listings such as the term sheet.
var ClauseSlots = []ClauseSlot{
	SlotAcceptance,
	SlotWarranty,
	SlotIPRights,
	SlotCancellation,
	SlotTermination,
	SlotLiability,
}

// ClauseSet holds the resolved text of every clause slot for one request.
type ClauseSet struct {
	Acceptance   string
	Warranty     string
	IPRights     string
	Cancellation string
	Termination  string
	Liability    string
}

func (c ClauseSet) Get(slot ClauseSlot) string {
	switch slot {
	case SlotAcceptance:
		return c.Acceptance
	case SlotWarranty:
		return c.Warranty
	case SlotIPRights:
		return c.IPRights
	case SlotCancellation:
		return c.Cancellation
	case SlotTermination:
		return c.Termination
	case SlotLiability:
		return c.Liability
	default:
		return ""
	}
}

// With returns a copy of c with slot replaced. Unknown slots leave c unchanged.
func (c ClauseSet) With(slot ClauseSlot, text string) ClauseSet {
	switch slot {
	case SlotAcceptance:
		c.Acceptance = text
	case SlotWarranty:
		c.Warranty = text
	case SlotIPRights:
		c.IPRights = text
	case SlotCancellation:
		c.Cancellation = text
	case SlotTermination:
		c.Termination = text
	case SlotLiability:
		c.Liability = text
	}
	return c
}

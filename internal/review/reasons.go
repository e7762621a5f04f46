package review

// ReasonKey identifies one entry of the fixed rejection-reason catalog.
type ReasonKey string

const (
	ReasonIDUnclear            ReasonKey = "ID_UNCLEAR"
	ReasonIDExpired            ReasonKey = "ID_EXPIRED"
	ReasonIDWrongType          ReasonKey = "ID_WRONG_TYPE"
	ReasonProofUnclear         ReasonKey = "PROOF_UNCLEAR"
	ReasonProofOld             ReasonKey = "PROOF_OLD"
	ReasonProofWrongType       ReasonKey = "PROOF_WRONG_TYPE"
	ReasonProofAddressMismatch ReasonKey = "PROOF_ADDRESS_MISMATCH"
	ReasonInfoMissing          ReasonKey = "INFO_MISSING"
	ReasonDocNotAllowed        ReasonKey = "DOC_NOT_ALLOWED"
	ReasonNameMismatch         ReasonKey = "NAME_MISMATCH"
	ReasonOther                ReasonKey = "OTHER"
)

// reasonCatalog maps each key to the text shown to the user in the
// rejection email. Order matters for composed reason strings.
var reasonCatalog = []struct {
	Key  ReasonKey
	Text string
}{
	{ReasonIDUnclear, "The ID document is blurry or unreadable"},
	{ReasonIDExpired, "The ID document is expired"},
	{ReasonIDWrongType, "The ID document is not an accepted form of identification"},
	{ReasonProofUnclear, "The proof of residency is blurry or unreadable"},
	{ReasonProofOld, "The proof of residency is more than 90 days old"},
	{ReasonProofWrongType, "The proof of residency is not an accepted document type"},
	{ReasonProofAddressMismatch, "The address on the proof of residency does not match the permit zone address"},
	{ReasonInfoMissing, "Required information is missing or cut off"},
	{ReasonDocNotAllowed, "This document type cannot be used for permit verification"},
	{ReasonNameMismatch, "The name on the documents does not match the account"},
	{ReasonOther, "Other (see details below)"},
}

var reasonTexts = func() map[ReasonKey]string {
	m := make(map[ReasonKey]string, len(reasonCatalog))
	for _, entry := range reasonCatalog {
		m[entry.Key] = entry.Text
	}
	return m
}()

// Keys returns the catalog keys in display order.
func Keys() []ReasonKey {
	keys := make([]ReasonKey, 0, len(reasonCatalog))
	for _, entry := range reasonCatalog {
		keys = append(keys, entry.Key)
	}
	return keys
}

// ReasonText resolves a catalog key to its human-readable text.
func ReasonText(key ReasonKey) (string, bool) {
	text, ok := reasonTexts[key]
	return text, ok
}

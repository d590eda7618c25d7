package account

import "fmt"

// Anonymization sentinels substituted for a member's real identity whenever a
// member appears as the counterparty on another account's statement. Members'
// identities are never exposed there; comparing against these sentinels still
// lets a UI distinguish "anonymous" from real values.
const (
	AnonymousPartyID   = "anonymous"
	AnonymousPartyName = "Anonymous worker"
)

// Party is the presentation-facing identity of a transfer counterparty as
// seen from one account's statement.
type Party struct {
	Kind Kind   `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsAnonymous reports whether the party carries the anonymization sentinels.
func (p Party) IsAnonymous() bool {
	return p.ID == AnonymousPartyID && p.Name == AnonymousPartyName
}

// Party resolves the owner into its statement-facing identity. Member owners
// always resolve to the anonymization sentinels; every other kind carries its
// real id and name. The switch is exhaustive over the closed owner union —
// an unknown kind panics.
func (o *Owner) Party() Party {
	switch o.Kind {
	case KindMember:
		return Party{Kind: KindMember, ID: AnonymousPartyID, Name: AnonymousPartyName}
	case KindCompany, KindCooperation, KindSocialAccounting:
		return Party{Kind: o.Kind, ID: o.ID.String(), Name: o.Name}
	default:
		panic(fmt.Sprintf("account: unknown owner kind %q", o.Kind))
	}
}

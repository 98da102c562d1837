package models

// Participant is an individual included in a shared-expense split.
// Participants are immutable once added to a split. Removing one before
// submission means building the request without it.
type Participant struct {
	// ID is unique within a split.
	ID string `json:"id"`

	// Name is the display name shown in the split breakdown.
	Name string `json:"name"`

	// Owner marks the current user, as opposed to the people they split with.
	// At most one participant in a split is the owner.
	Owner bool `json:"owner,omitempty"`
}

// DisplayName returns the participant's name, falling back to the ID.
func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

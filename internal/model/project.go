package model

// Project is a partner's client dossier. IDs are assigned by the remote
// store and stay stable for the dossier's lifetime.
type Project struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Location  string      `json:"location"`
	CreatedAt string      `json:"createdAt"` // provider-issued ISO timestamp, opaque to us
	Info      ProjectInfo `json:"info"`
	Documents []Document  `json:"documents"`
}

// ProjectInfo is the flat free-text business record attached to a dossier.
// Every field is optional; there are no cross-field invariants.
type ProjectInfo struct {
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Profession          string `json:"profession"`
	ConciergeCommission string `json:"conciergeCommission"`
	ExchangeDate        string `json:"exchangeDate"`
	Strengths           string `json:"strengths"`
	Biography           string `json:"biography"`
	Goals               string `json:"goals"`
	TargetRevenueY1     string `json:"targetRevenueY1"`
	TargetRevenueY2     string `json:"targetRevenueY2"`
	TargetRevenueY3     string `json:"targetRevenueY3"`
	TargetGrossMargin   string `json:"targetGrossMargin"`
	CallTranscript      string `json:"callTranscript"`
	Description         string `json:"description"`
	Budget              string `json:"budget"`
	Deadline            string `json:"deadline"`
	Notes               string `json:"notes"`
}

// IsZero reports whether no info field has been filled in yet.
func (i ProjectInfo) IsZero() bool {
	return i == ProjectInfo{}
}

// HasDetail reports whether the heavy fields have been populated at least
// once, i.e. the dossier is richer than a summary row.
func (p *Project) HasDetail() bool {
	return p.Documents != nil && !p.Info.IsZero()
}

// DisplayName returns "FirstName LastName" for logs and prompts.
func (p *Project) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// Clone returns a deep copy. The store hands copies to callers so its own
// state is only ever mutated through its operations.
func (p *Project) Clone() *Project {
	cp := *p
	if p.Documents != nil {
		cp.Documents = make([]Document, len(p.Documents))
		copy(cp.Documents, p.Documents)
	}
	return &cp
}

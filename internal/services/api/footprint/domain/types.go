// Package domain holds DTOs for footprint http and service contracts
package domain

// CheckInput is the scan request body
type CheckInput struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password,omitempty" example:"hunter2"`
	UserID   string `json:"user_id,omitempty" example:"6a1f1d57-3a62-4a18-9a10-6d2f1b9f4c21"`
}

// Breach is one normalized breach record; source is "hibp" or "xposed"
type Breach struct {
	Name        string   `json:"name" example:"Adobe"`
	Domain      string   `json:"domain,omitempty" example:"adobe.com"`
	BreachDate  string   `json:"breach_date,omitempty" example:"2013-10-04"`
	PwnCount    int64    `json:"pwn_count,omitempty" example:"152445165"`
	Description string   `json:"description,omitempty"`
	DataClasses []string `json:"data_classes"`
	Source      string   `json:"source" example:"hibp"`
}

// Contact is a publicly discoverable address with its confidence score
type Contact struct {
	Value      string `json:"value" example:"press@example.com"`
	Confidence int    `json:"confidence" example:"92"`
}

// Discovery aggregates the contact discovery findings for the email's domain
type Discovery struct {
	Domain             *string   `json:"domain"`
	EmailsFound        int       `json:"emails_found" example:"4"`
	Confidence         *int      `json:"confidence"`
	Country            *string   `json:"country"`
	Disposable         bool      `json:"disposable"`
	Webmail            bool      `json:"webmail"`
	DiscoverEmails     []Contact `json:"discover_emails"`
	DomainSearchEmails []Contact `json:"domain_search_emails"`
}

// ReputationDetails holds the reputation flags the scorer reads
type ReputationDetails struct {
	Blacklisted       bool `json:"blacklisted"`
	MaliciousActivity bool `json:"malicious_activity"`
	CredentialsLeaked bool `json:"credentials_leaked"`
	DataBreach        bool `json:"data_breach"`
}

// Reputation is the reputation service's assessment; nil in the report means
// the service had no opinion, which is distinct from a clean assessment
type Reputation struct {
	Email      string            `json:"email,omitempty"`
	Reputation string            `json:"reputation,omitempty" example:"high"`
	Suspicious bool              `json:"suspicious"`
	References int               `json:"references,omitempty"`
	Details    ReputationDetails `json:"details"`
}

// RiskAnalytics is the secondary breach directory's risk assessment
type RiskAnalytics struct {
	RiskLabel          string `json:"risk_label,omitempty" example:"High"`
	RiskScore          int    `json:"risk_score" example:"8"`
	PlaintextPasswords int    `json:"plaintext_passwords"`
}

// PasswordCheck is the k-anonymity exposure outcome; checked=false means no
// password was supplied or the check could not complete, never "not pwned"
type PasswordCheck struct {
	Checked  bool `json:"checked"`
	IsPwned  bool `json:"is_pwned"`
	PwnCount int  `json:"pwn_count"`
}

// Findings is the merged, pre-scoring view of everything the sources returned
type Findings struct {
	Breaches      []Breach
	Analytics     *RiskAnalytics
	DiscoverCount int
	DomainCount   int
	Reputation    *Reputation
	Password      PasswordCheck
}

// Report is the full scan response
type Report struct {
	Email           string        `json:"email" example:"user@example.com"`
	Score           int           `json:"score" example:"85"`
	BreachCount     int           `json:"breach_count" example:"2"`
	PlatformsFound  int           `json:"platforms_found" example:"4"`
	Breaches        []Breach      `json:"breaches"`
	HunterData      Discovery     `json:"hunter_data"`
	EmailRep        *Reputation   `json:"emailrep"`
	PasswordCheck   PasswordCheck `json:"password_check"`
	Recommendations []string      `json:"recommendations"`
	Summary         string        `json:"summary"`
}

// DeleteResult acknowledges removal of a user's persisted rows
type DeleteResult struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"All user data deleted successfully"`
}

package session

// Session state for the cattle health portal client.

import "strings"

// User represents the signed-in farmer.
type User struct {
	Name     string
	Mobile   string
	Village  string
	Mandal   string
	District string
	Role     string
}

// CattleRecord holds the cattle details captured by the predictor wizard.
type CattleRecord struct {
	ID     string
	Gender string
	Age    int
}

// Tab identifies which auth card is active.
type Tab int

const (
	TabRegister Tab = iota
	TabLogin
)

// Session is the portal's only in-memory entity. All mutation goes through
// the transition methods below; panels never write fields directly.
type Session struct {
	User   *User
	Cattle *CattleRecord

	// PendingOTP holds the issued code in mock mode. In live mode the code
	// never reaches the client; OTPRequested alone tracks the pending state.
	PendingOTP   string
	OTPRequested bool

	ActiveTab Tab
}

// New returns an empty, unauthenticated session with the registration tab
// active.
func New() *Session {
	return &Session{ActiveTab: TabRegister}
}

// Authenticated reports whether a user identity has been established.
func (s *Session) Authenticated() bool {
	return s.User != nil
}

// BeginOTP records a newly issued OTP, replacing any previous one. An empty
// code marks a live-mode request where only the pending state is tracked.
func (s *Session) BeginOTP(code string) {
	s.PendingOTP = code
	s.OTPRequested = true
}

// CompleteOTP establishes the user identity and clears the pending code.
func (s *Session) CompleteOTP(u User) {
	copied := u
	s.User = &copied
	s.PendingOTP = ""
	s.OTPRequested = false
}

// RecordCattle stores (or replaces) the in-progress cattle record.
func (s *Session) RecordCattle(rec CattleRecord) {
	copied := rec
	s.Cattle = &copied
}

// MergeProfile applies edited profile fields to the current user. Mobile and
// role are not editable. No-op when unauthenticated.
func (s *Session) MergeProfile(name, village, mandal, district string) {
	if s.User == nil {
		return
	}
	s.User.Name = name
	s.User.Village = village
	s.User.Mandal = mandal
	s.User.District = district
}

// SwitchTab activates the given auth card.
func (s *Session) SwitchTab(t Tab) {
	s.ActiveTab = t
}

// Clear resets the session to its initial state: no user, no cattle record,
// no pending OTP, registration tab active.
func (s *Session) Clear() {
	s.User = nil
	s.Cattle = nil
	s.PendingOTP = ""
	s.OTPRequested = false
	s.ActiveTab = TabRegister
}

// AvatarInitial returns the uppercased first letter of the user's name, or
// "U" when no usable name is set.
func (s *Session) AvatarInitial() string {
	if s.User == nil {
		return "U"
	}
	name := []rune(strings.TrimSpace(s.User.Name))
	if len(name) == 0 {
		return "U"
	}
	return strings.ToUpper(string(name[0]))
}

// Package storage persists users, saved plans and the API key as JSON files
// in the data directory. Collections are loaded once at startup and the
// whole file is rewritten on every mutation; expected sizes are small enough
// that incremental writes would buy nothing.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"careplan-assistant/internal/assessment"
	"careplan-assistant/internal/careplan"
	"careplan-assistant/internal/reference"
)

const (
	usersFile  = "careplan_users.json"
	plansFile  = "careplan_plans.json"
	apiKeyFile = "gemini_api_key"
)

// User is a registered care recipient, identified by initials only.
type User struct {
	ID        string    `json:"id"`
	Initial   string    `json:"initial"`
	Age       int       `json:"age"`
	CareLevel string    `json:"careLevel"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedPlan is a persisted snapshot of the working item list and assessment
// sheet. UserID may be empty when the plan was saved before selecting a
// user.
type SavedPlan struct {
	ID             string                                    `json:"id"`
	UserID         string                                    `json:"userId"`
	ServiceType    string                                    `json:"serviceType"`
	Items          []careplan.Item                           `json:"items"`
	AssessmentData map[string]assessment.CategoryAssessment `json:"assessmentData"`
	CreatedAt      time.Time                                 `json:"createdAt"`
	UpdatedAt      time.Time                                 `json:"updatedAt"`
}

// Store owns the persisted user and plan collections.
type Store struct {
	dataDir string
	users   []User
	plans   []SavedPlan
	apiKey  string
}

// NewStore ensures the data directory exists and loads the persisted
// collections. Missing files mean empty collections.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	s := &Store{dataDir: dataDir}
	if err := loadJSON(filepath.Join(dataDir, usersFile), &s.users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if err := loadJSON(filepath.Join(dataDir, plansFile), &s.plans); err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	key, err := os.ReadFile(filepath.Join(dataDir, apiKeyFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read API key: %w", err)
	}
	s.apiKey = strings.TrimSpace(string(key))

	return s, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// newID returns a millisecond-timestamp id, bumped until it collides with
// nothing the exists check knows about.
func newID(exists func(string) bool) string {
	candidate := time.Now().UnixMilli()
	for exists(strconv.FormatInt(candidate, 10)) {
		candidate++
	}
	return strconv.FormatInt(candidate, 10)
}

// --- users ---

// AddUser validates and registers a new user, returning its id. Nothing is
// persisted when validation fails.
func (s *Store) AddUser(initial string, age int, careLevel string) (string, error) {
	initial = strings.TrimSpace(initial)
	if initial == "" {
		return "", fmt.Errorf("イニシャルを入力してください")
	}
	if age < 0 || age > 120 {
		return "", fmt.Errorf("年齢を正しく入力してください")
	}
	if !reference.ValidCareLevel(careLevel) {
		return "", fmt.Errorf("要介護度が不正です: %s", careLevel)
	}

	user := User{
		ID:        newID(s.userExists),
		Initial:   initial,
		Age:       age,
		CareLevel: careLevel,
		CreatedAt: time.Now(),
	}
	s.users = append(s.users, user)
	if err := s.writeJSON(usersFile, s.users); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *Store) userExists(id string) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Users returns the registered users in insertion order.
func (s *Store) Users() []User {
	users := make([]User, len(s.users))
	copy(users, s.users)
	return users
}

// UserByID looks up a user.
func (s *Store) UserByID(id string) (User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// DeleteUserCascade removes the user and every plan that belongs to them.
// Plans of other users are untouched.
func (s *Store) DeleteUserCascade(userID string) error {
	users := s.users[:0]
	for _, u := range s.users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	s.users = users

	plans := s.plans[:0]
	for _, p := range s.plans {
		if p.UserID != userID {
			plans = append(plans, p)
		}
	}
	s.plans = plans

	if err := s.writeJSON(usersFile, s.users); err != nil {
		return err
	}
	return s.writeJSON(plansFile, s.plans)
}

// --- plans ---

// SavePlan persists the working state. With overwrite set and a resolvable
// existing id, the record is replaced in place keeping its id and
// createdAt; otherwise a new record with a fresh id is appended.
func (s *Store) SavePlan(
	items []careplan.Item,
	assessmentData map[string]assessment.CategoryAssessment,
	serviceType string,
	userID string,
	existingPlanID string,
	overwrite bool,
) (string, error) {
	now := time.Now()

	if overwrite && existingPlanID != "" {
		for i := range s.plans {
			if s.plans[i].ID == existingPlanID {
				s.plans[i].Items = items
				s.plans[i].AssessmentData = assessmentData
				s.plans[i].UpdatedAt = now
				if err := s.writeJSON(plansFile, s.plans); err != nil {
					return "", err
				}
				return existingPlanID, nil
			}
		}
	}

	plan := SavedPlan{
		ID:             newID(s.planExists),
		UserID:         userID,
		ServiceType:    serviceType,
		Items:          items,
		AssessmentData: assessmentData,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.plans = append(s.plans, plan)
	if err := s.writeJSON(plansFile, s.plans); err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (s *Store) planExists(id string) bool {
	for _, p := range s.plans {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Plans returns all saved plans in insertion order.
func (s *Store) Plans() []SavedPlan {
	plans := make([]SavedPlan, len(s.plans))
	copy(plans, s.plans)
	return plans
}

// PlansForUser returns the user's plans in insertion order.
func (s *Store) PlansForUser(userID string) []SavedPlan {
	var plans []SavedPlan
	for _, p := range s.plans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	return plans
}

// PlanByID looks up a saved plan.
func (s *Store) PlanByID(id string) (SavedPlan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return SavedPlan{}, false
}

// DeletePlan removes a saved plan. Clearing the active-plan pointer when it
// matches is the caller's job.
func (s *Store) DeletePlan(planID string) error {
	plans := s.plans[:0]
	for _, p := range s.plans {
		if p.ID != planID {
			plans = append(plans, p)
		}
	}
	s.plans = plans
	return s.writeJSON(plansFile, s.plans)
}

// --- API key ---

// APIKey returns the stored Gemini API key, empty when none is saved.
func (s *Store) APIKey() string {
	return s.apiKey
}

// SetAPIKey persists the API key in its own file, separate from the
// collections.
func (s *Store) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	path := filepath.Join(s.dataDir, apiKeyFile)
	if err := os.WriteFile(path, []byte(key), 0600); err != nil {
		return fmt.Errorf("failed to write API key: %w", err)
	}
	s.apiKey = key
	return nil
}

package reference

// ServiceType identifies which plan document is being authored.
type ServiceType struct {
	ID       string
	Name     string
	PlanName string
}

// AssessmentCategory is one thematic group of checklist items.
type AssessmentCategory struct {
	ID         string
	Name       string
	Icon       string
	CheckItems []string
}

// ItemTemplate is a canned care-plan entry for a single checklist item,
// used by the no-API suggestion path.
type ItemTemplate struct {
	Needs          string
	LongTermGoal   string
	ShortTermGoal  string
	ServiceContent string
}

// Categories returns the assessment categories in display order.
func Categories() []AssessmentCategory {
	return assessmentCategories
}

// CategoryByID looks up a category by its id.
func CategoryByID(id string) (AssessmentCategory, bool) {
	for _, c := range assessmentCategories {
		if c.ID == id {
			return c, true
		}
	}
	return AssessmentCategory{}, false
}

// HasItem reports whether label is one of the category's checklist items.
func (c AssessmentCategory) HasItem(label string) bool {
	for _, item := range c.CheckItems {
		if item == label {
			return true
		}
	}
	return false
}

// ServiceTypeByID looks up a service type by its id.
func ServiceTypeByID(id string) (ServiceType, bool) {
	for _, s := range serviceTypes {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceType{}, false
}

// ServiceTypes returns the selectable service types.
func ServiceTypes() []ServiceType {
	return serviceTypes
}

// Templates returns the item-to-template table for the suggestion engine.
func Templates() map[string]ItemTemplate {
	return itemTemplates
}

// CareLevels returns the seven 要介護度 values accepted at user registration.
func CareLevels() []string {
	return careLevels
}

// ValidCareLevel reports whether level is one of the seven care levels.
func ValidCareLevel(level string) bool {
	for _, l := range careLevels {
		if l == level {
			return true
		}
	}
	return false
}

package models

type Language string

const (
	LanguageBN Language = "bn"
	LanguageEN Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageBN || l == LanguageEN
}

// ContentSource records where the active bundle came from.
type ContentSource string

const (
	SourceDefault ContentSource = "default"
	SourceCache   ContentSource = "cache"
	SourceRemote  ContentSource = "remote"
)

// ContentBundle is the localized reference dataset. The same document shape
// is stored in Firestore and in the local cache.
type ContentBundle struct {
	BN *LanguageData `firestore:"bn" json:"bn"`
	EN *LanguageData `firestore:"en" json:"en"`
}

// Valid reports whether both language sections are present and non-empty.
func (b ContentBundle) Valid() bool {
	return b.BN != nil && !b.BN.Empty() && b.EN != nil && !b.EN.Empty()
}

// For returns the section for lang, falling back to Bangla.
func (b ContentBundle) For(lang Language) *LanguageData {
	if lang == LanguageEN && b.EN != nil {
		return b.EN
	}
	return b.BN
}

type LanguageData struct {
	Hospitals         []Hospital         `firestore:"hospitals" json:"hospitals"`
	HealthGuides      []HealthGuide      `firestore:"healthGuides" json:"healthGuides"`
	FAQs              []FAQ              `firestore:"faqs" json:"faqs"`
	LegalGuides       []Guide            `firestore:"legalGuides" json:"legalGuides"`
	GovtGuides        []Guide            `firestore:"govtGuides" json:"govtGuides"`
	MedicineInfo      []InfoItem         `firestore:"medicineInfo" json:"medicineInfo"`
	PsychologyTips    []InfoItem         `firestore:"psychologyTips" json:"psychologyTips"`
	WomenSafety       []InfoItem         `firestore:"womenSafety" json:"womenSafety"`
	Jobs              []Job              `firestore:"jobs" json:"jobs"`
	SkillResources    []SkillResource    `firestore:"skillResources" json:"skillResources"`
	TransportServices []TransportService `firestore:"transportServices" json:"transportServices"`
	SeniorServices    []Guide            `firestore:"seniorServices" json:"seniorServices"`
	CommunityHelpers  []CommunityHelper  `firestore:"communityHelpers" json:"communityHelpers"`
	CommunityEvents   []CommunityEvent   `firestore:"communityEvents" json:"communityEvents"`
	WomenSpecialists  []Specialist       `firestore:"womenSpecialists" json:"womenSpecialists"`
	Notifications     []Notification     `firestore:"notifications" json:"notifications"`
	Doctors           []Doctor           `firestore:"doctors" json:"doctors"`
}

// Empty is true when no collection carries any entry.
func (d *LanguageData) Empty() bool {
	return len(d.Hospitals)+len(d.HealthGuides)+len(d.FAQs)+len(d.LegalGuides)+
		len(d.GovtGuides)+len(d.MedicineInfo)+len(d.PsychologyTips)+len(d.WomenSafety)+
		len(d.Jobs)+len(d.SkillResources)+len(d.TransportServices)+len(d.SeniorServices)+
		len(d.CommunityHelpers)+len(d.CommunityEvents)+len(d.WomenSpecialists)+
		len(d.Notifications)+len(d.Doctors) == 0
}

type Hospital struct {
	ID      string `firestore:"id" json:"id"`
	Name    string `firestore:"name" json:"name"`
	Address string `firestore:"address" json:"address"`
	Phone   string `firestore:"phone" json:"phone"`
	Type    string `firestore:"type" json:"type"`
	Website string `firestore:"website,omitempty" json:"website,omitempty"`
}

type HealthGuide struct {
	Title    string `firestore:"title" json:"title"`
	Symptoms string `firestore:"symptoms" json:"symptoms"`
	Action   string `firestore:"action" json:"action"`
	Warning  string `firestore:"warning" json:"warning"`
}

type FAQ struct {
	Question string `firestore:"question" json:"question"`
	Answer   string `firestore:"answer" json:"answer"`
	Category string `firestore:"category" json:"category"`
}

type GuideStep struct {
	Text string `firestore:"text" json:"text"`
}

type Guide struct {
	Title       string      `firestore:"title" json:"title"`
	Description string      `firestore:"description,omitempty" json:"description,omitempty"`
	Steps       []GuideStep `firestore:"steps" json:"steps"`
	Website     string      `firestore:"website,omitempty" json:"website,omitempty"`
}

type InfoItem struct {
	Title       string `firestore:"title" json:"title"`
	Description string `firestore:"description" json:"description"`
}

type Job struct {
	ID       string `firestore:"id" json:"id"`
	Title    string `firestore:"title" json:"title"`
	Company  string `firestore:"company" json:"company"`
	Location string `firestore:"location" json:"location"`
	Salary   string `firestore:"salary" json:"salary"`
	Type     string `firestore:"type" json:"type"`
	Website  string `firestore:"website,omitempty" json:"website,omitempty"`
	Phone    string `firestore:"phone,omitempty" json:"phone,omitempty"`
}

type SkillResource struct {
	ID          string `firestore:"id" json:"id"`
	Title       string `firestore:"title" json:"title"`
	Provider    string `firestore:"provider" json:"provider"`
	Duration    string `firestore:"duration" json:"duration"`
	Description string `firestore:"description" json:"description"`
	Type        string `firestore:"type" json:"type"`
	Website     string `firestore:"website,omitempty" json:"website,omitempty"`
}

type TransportService struct {
	Name     string `firestore:"name" json:"name"`
	Type     string `firestore:"type" json:"type"`
	Phone    string `firestore:"phone" json:"phone"`
	Location string `firestore:"location" json:"location"`
	Website  string `firestore:"website,omitempty" json:"website,omitempty"`
}

type CommunityHelper struct {
	ID              string `firestore:"id" json:"id"`
	Name            string `firestore:"name" json:"name"`
	Type            string `firestore:"type" json:"type"`
	Role            string `firestore:"role" json:"role"`
	Description     string `firestore:"description" json:"description"`
	Location        string `firestore:"location" json:"location"`
	Contact         string `firestore:"contact" json:"contact"`
	BloodGroup      string `firestore:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	LastActive      string `firestore:"lastActive,omitempty" json:"lastActive,omitempty"`
	Verified        bool   `firestore:"verified,omitempty" json:"verified,omitempty"`
	TotalHelped     int    `firestore:"totalHelped,omitempty" json:"totalHelped,omitempty"`
	Website         string `firestore:"website,omitempty" json:"website,omitempty"`
	DonationDetails string `firestore:"donationDetails,omitempty" json:"donationDetails,omitempty"`
}

type CommunityEvent struct {
	ID          string `firestore:"id" json:"id"`
	Title       string `firestore:"title" json:"title"`
	Date        string `firestore:"date" json:"date"`
	Time        string `firestore:"time" json:"time"`
	Location    string `firestore:"location" json:"location"`
	District    string `firestore:"district" json:"district"`
	Description string `firestore:"description" json:"description"`
	Organizer   string `firestore:"organizer" json:"organizer"`
	Contact     string `firestore:"contact" json:"contact"`
	Type        string `firestore:"type" json:"type"`
}

type Specialist struct {
	ID        string `firestore:"id" json:"id"`
	Name      string `firestore:"name" json:"name"`
	Specialty string `firestore:"specialty" json:"specialty"`
	Location  string `firestore:"location" json:"location"`
	Phone     string `firestore:"phone" json:"phone"`
	Hospital  string `firestore:"hospital" json:"hospital"`
}

type Doctor struct {
	ID            string `firestore:"id" json:"id"`
	Name          string `firestore:"name" json:"name"`
	Degrees       string `firestore:"degrees" json:"degrees"`
	Specialty     string `firestore:"specialty" json:"specialty"`
	Designation   string `firestore:"designation" json:"designation"`
	Hospital      string `firestore:"hospital" json:"hospital"`
	District      string `firestore:"district" json:"district"`
	Phone         string `firestore:"phone" json:"phone"`
	Fee           string `firestore:"fee,omitempty" json:"fee,omitempty"`
	VisitingHours string `firestore:"visitingHours,omitempty" json:"visitingHours,omitempty"`
}

type Notification struct {
	ID      string `firestore:"id" json:"id"`
	Title   string `firestore:"title" json:"title"`
	Message string `firestore:"message" json:"message"`
	Time    string `firestore:"time" json:"time"`
	Read    bool   `firestore:"read" json:"read"`
}

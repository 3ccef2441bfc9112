package seed

import (
	"sort"
	"strings"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

var districts = map[string][]string{
	"Dhaka":       {"Gulshan", "Mirpur", "Dhanmondi", "Uttara", "Savar", "Keraniganj", "Dohar", "Nawabganj", "Dhamrai", "Motijheel", "Tejgaon", "Ramna", "Khilgaon", "Mohammadpur", "Badda"},
	"Gazipur":     {"Gazipur Sadar", "Kaliakair", "Kapasia", "Sreepur", "Kaliganj", "Tongi"},
	"Narayanganj": {"Narayanganj Sadar", "Araihazar", "Sonargaon", "Bandar", "Rupganj", "Siddhirganj"},
	"Chattogram":  {"Kotwali", "Pahartali", "Panchlaish", "Hathazari", "Sitakunda", "Mirsharai", "Patiya", "Raozan", "Rangunia", "Boalkhali", "Anwara", "Chandanaish", "Satkania", "Lohagara", "Banshkhali", "Halishahar", "Double Mooring"},
	"Comilla":     {"Comilla Sadar", "Laksham", "Daudkandi", "Muradnagar", "Debidwar", "Chandina", "Homna", "Burichang", "Brahmanpara", "Nangalkot", "Barura", "Titas", "Monohorgonj"},
	"Sylhet":      {"Sylhet Sadar", "Beanibazar", "Golapganj", "Bishwanath", "Osmani Nagar", "Balaganj", "Fenchuganj", "Zakiganj", "Kanaighat", "Gowainghat", "Jaintiapur", "Companiganj"},
	"Rajshahi":    {"Boalia", "Motihar", "Puthia", "Bagmara", "Charghat", "Durgapur", "Godagari", "Mohanpur", "Tanore", "Rajpara"},
	"Khulna":      {"Khulna Sadar", "Sonadanga", "Dumuria", "Phultala", "Dacope", "Batiaghata", "Dighelia", "Koyra", "Paikgachha", "Rupsha", "Terokhada", "Khalishpur", "Daulatpur"},
	"Barishal":    {"Barishal Sadar", "Bakerganj", "Babuganj", "Wazirpur", "Banaripara", "Agailjhara", "Gaurnadi", "Hizla", "Mehendiganj", "Muladi"},
	"Rangpur":     {"Rangpur Sadar", "Kaunia", "Pirgacha", "Mithapukur", "Badarganj", "Gangachara", "Pirganj", "Taraganj"},
	"Mymensingh":  {"Mymensingh Sadar", "Muktagacha", "Valuka", "Trishal", "Gafargaon", "Bhaluka", "Dhobaura", "Fulbaria", "Haluaghat", "Ishwarganj", "Nandail", "Phulpur"},
	"Cox's Bazar": {"Cox's Bazar Sadar", "Chakaria", "Maheshkhali", "Ramu", "Teknaf", "Ukhia", "Kutubdia", "Pekua"},
	"Bogra":       {"Bogra Sadar", "Sherpur", "Sariakandi", "Gabtali", "Shibganj", "Dhupchanchia"},
	"Jessore":     {"Jessore Sadar", "Benapole", "Abhaynagar", "Bagherpara", "Chaugachha", "Jhikargachha", "Keshabpur", "Manirampur", "Sharsha"},
}

var localHelplines = map[string]models.LocalHelpline{
	"Gulshan":       {Police: "01713373166", Fire: "01730002233", UNO: "N/A (Metro)", Hospital: "02-9855953"},
	"Mirpur":        {Police: "01713373180", Fire: "01730336655", UNO: "N/A (Metro)", Hospital: "02-9005650"},
	"Savar":         {Police: "01713373352", Fire: "01730002244", UNO: "01733333333", Hospital: "01777777777"},
	"Gazipur Sadar": {Police: "01713373260", Fire: "01730002255", UNO: "01755555555", Hospital: "01788888888"},
	"Kotwali":       {Police: "01713373620", Fire: "01730002400", UNO: "N/A", Hospital: "031-619400"},
	"Dhanmondi":     {Police: "01713373168", Fire: "01730002235", UNO: "N/A (Metro)", Hospital: "02-9676356"},
	"Uttara":        {Police: "01713373156", Fire: "01730002238", UNO: "N/A (Metro)", Hospital: "02-58955500"},
}

// nationalHelpline is used for upazilas without a local directory entry.
var nationalHelpline = models.LocalHelpline{Police: "999", Fire: "999", UNO: "333", Hospital: "999"}

// Directory resolves district/upazila selections against the compiled-in map.
type Directory struct{}

func NewDirectory() *Directory {
	return &Directory{}
}

// Resolve returns the canonical location when both parts are known and the
// upazila belongs to the district.
func (d *Directory) Resolve(district, upazila string) (models.Location, bool) {
	district, upazila = strings.TrimSpace(district), strings.TrimSpace(upazila)
	for _, u := range districts[district] {
		if strings.EqualFold(u, upazila) {
			return models.Location{District: district, Upazila: u}, true
		}
	}
	return models.Location{}, false
}

// Districts returns every district with its upazilas, districts sorted.
func (d *Directory) Districts() []DistrictEntry {
	names := make([]string, 0, len(districts))
	for name := range districts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]DistrictEntry, 0, len(names))
	for _, name := range names {
		out = append(out, DistrictEntry{Name: name, Upazilas: append([]string(nil), districts[name]...)})
	}
	return out
}

// Helplines returns the local contacts for a resolved location, falling back
// to the national numbers.
func (d *Directory) Helplines(loc models.Location) (models.LocalHelpline, bool) {
	if h, ok := localHelplines[loc.Upazila]; ok {
		return h, true
	}
	return nationalHelpline, false
}

type DistrictEntry struct {
	Name     string   `json:"name"`
	Upazilas []string `json:"upazilas"`
}

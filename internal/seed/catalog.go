package seed

import (
	"strings"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

const (
	ServiceMobileRecharge = "Mobile Recharge"
	ServiceElectricity    = "Electricity"
	ServiceGas            = "Gas"
	ServiceWater          = "Water"
	ServiceInternet       = "Internet"
	ServiceTV             = "TV"
	ServiceCity           = "City Services"

	ServiceTrainTicket = "Train Ticket"
	ServiceBusTicket   = "Bus Ticket"
)

// Wallets are the mobile financial services accepted as payment methods.
var Wallets = []string{"bKash", "Nagad", "Rocket", "Upay"}

// linkableBanks are the card and bank providers offered when linking an account.
var linkableBanks = []string{"City Bank", "Visa", "Mastercard"}

var serviceProviders = map[string][]models.ServiceProvider{
	ServiceMobileRecharge: {
		{Name: "Grameenphone", Helpline: "121"},
		{Name: "Robi", Helpline: "121"},
		{Name: "Banglalink", Helpline: "121"},
		{Name: "Teletalk", Helpline: "121"},
		{Name: "Airtel", Helpline: "121"},
		{Name: "Skitto", Helpline: "121"},
	},
	ServiceElectricity: {
		{Name: "BPDB (Palli Bidyut) Prepaid", Helpline: "16200"},
		{Name: "BPDB (Palli Bidyut) Postpaid", Helpline: "16200"},
		{Name: "DESCO (Dhaka) Prepaid", Helpline: "16120"},
		{Name: "DESCO (Dhaka) Postpaid", Helpline: "16120"},
		{Name: "DPDC (Dhaka) Prepaid", Helpline: "16116"},
		{Name: "DPDC (Dhaka) Postpaid", Helpline: "16116"},
		{Name: "WZPDCL (West Zone)", Helpline: "16117"},
		{Name: "NESCO (North Zone)", Helpline: "16603"},
		{Name: "BREB", Helpline: "02-8900331"},
	},
	ServiceGas: {
		{Name: "Titas Gas (Non-Metered)", Helpline: "16496"},
		{Name: "Titas Gas (Metered)", Helpline: "16496"},
		{Name: "Karnaphuli Gas (KGDCL)", Helpline: "02-333314511"},
		{Name: "Jalalabad Gas (JGTDSL)", Helpline: "0821-717274"},
		{Name: "Sundarban Gas", Helpline: "02-55138753"},
		{Name: "Pashchimanchal Gas (PGCL)", Helpline: "0751-63829"},
		{Name: "Bakhrabad Gas (BGDCL)", Helpline: "081-68858"},
	},
	ServiceWater: {
		{Name: "Dhaka WASA", Helpline: "16162"},
		{Name: "Chattogram WASA", Helpline: "09612-500600"},
		{Name: "Khulna WASA", Helpline: "041-762233"},
		{Name: "Rajshahi WASA", Helpline: "0721-772186"},
	},
	ServiceInternet: {
		{Name: "Link3", Helpline: "16335"},
		{Name: "Amber IT", Helpline: "09611-999111"},
		{Name: "Carnival Internet", Helpline: "09666-777888"},
		{Name: "Dot Internet", Helpline: "16755"},
		{Name: "Sam Online", Helpline: "09666-775577"},
		{Name: "KS Network", Helpline: "09606-555555"},
		{Name: "Triangle", Helpline: "09666-770770"},
		{Name: "Mazeda Networks", Helpline: "09613-334455"},
		{Name: "Circle Network", Helpline: "16439"},
		{Name: "Antaranga Dot Com", Helpline: "09611-800800"},
	},
	ServiceTV: {
		{Name: "Akash DTH", Helpline: "16442"},
		{Name: "Bengal Digital", Helpline: "16543"},
		{Name: "Jadoo Digital", Helpline: "16568"},
		{Name: "Bumbye Digital", Helpline: "09613-300300"},
	},
	ServiceCity: {
		{Name: "DNCC (Dhaka North) Tax", Helpline: "16106"},
		{Name: "DSCC (Dhaka South) Tax", Helpline: "09611-100200"},
		{Name: "Chattogram City Corp", Helpline: "02-333336585"},
		{Name: "Gazipur City Corp", Helpline: "09678-777222"},
		{Name: "Narayanganj City Corp", Helpline: "02-7645853"},
		{Name: "Sylhet City Corp", Helpline: "0821-716480"},
	},
}

var accountPlaceholders = map[string]string{
	ServiceMobileRecharge: "01XXXXXXXXX",
	ServiceElectricity:    "Meter No (e.g., 1234567)",
	ServiceGas:            "Customer Code",
	ServiceWater:          "WASA Account No",
	ServiceInternet:       "Client ID / User ID",
	ServiceTV:             "Subscriber ID",
}

var ticketProviders = map[string][]models.TicketProvider{
	ServiceTrainTicket: {
		{Name: "Bangladesh Railway (E-Ticket)", URL: "https://eticket.railway.gov.bd/", Description: "Official Railway Site"},
		{Name: "Sonar Bangla Express", URL: "https://eticket.railway.gov.bd/", Description: "Dhaka-Chittagong"},
		{Name: "Subarna Express", URL: "https://eticket.railway.gov.bd/", Description: "Dhaka-Chittagong"},
		{Name: "Parabat Express", URL: "https://eticket.railway.gov.bd/", Description: "Dhaka-Sylhet"},
		{Name: "Sundarban Express", URL: "https://eticket.railway.gov.bd/", Description: "Dhaka-Khulna"},
		{Name: "Silkcity Express", URL: "https://eticket.railway.gov.bd/", Description: "Dhaka-Rajshahi"},
	},
	ServiceBusTicket: {
		{Name: "Shohoz (Aggregator)", URL: "https://www.shohoz.com/bus-tickets", Description: "Hanif, Nabil, etc."},
		{Name: "BusBD", URL: "https://busbd.com.bd/", Description: "Ticket Aggregator"},
		{Name: "Jatri", URL: "https://ticket.jatri.co/", Description: "Ticket Aggregator"},
		{Name: "Green Line", URL: "https://greenlinebd.com/", Description: "Official Site"},
		{Name: "Ena Transport", URL: "https://enatransport.net/", Description: "Official Site"},
		{Name: "Shyamoli Paribahan", URL: "https://shyamoliparibahan.com/", Description: "Official Site"},
		{Name: "Desh Travels", URL: "https://deshtravelsbd.com/", Description: "Official Site"},
		{Name: "Saintmartin Paribahan", URL: "https://saintmartinparibahan.com.bd/", Description: "Official Site"},
		{Name: "S.R Travels", URL: "https://srtravelsbd.com/", Description: "Official Site"},
	},
}

// Providers returns the billers for a bill-payment service.
func Providers(service string) ([]models.ServiceProvider, bool) {
	p, ok := serviceProviders[service]
	return append([]models.ServiceProvider(nil), p...), ok
}

// Provider looks up one biller of a service by name.
func Provider(service, name string) (models.ServiceProvider, bool) {
	for _, p := range serviceProviders[service] {
		if p.Name == name {
			return p, true
		}
	}
	return models.ServiceProvider{}, false
}

// Placeholder is the account-number hint shown for a service.
func Placeholder(service string) string {
	if p, ok := accountPlaceholders[service]; ok {
		return p
	}
	return "Account Number"
}

// TicketProviders returns the booking links for a ticket service.
func TicketProviders(service string) ([]models.TicketProvider, bool) {
	p, ok := ticketProviders[service]
	return append([]models.TicketProvider(nil), p...), ok
}

// IsWallet reports whether name is an accepted payment method.
func IsWallet(name string) bool {
	for _, w := range Wallets {
		if w == name {
			return true
		}
	}
	return false
}

// CanonicalProvider returns the catalog spelling of a wallet or bank name,
// matched without regard to case. Unknown names come back trimmed.
func CanonicalProvider(name string) string {
	name = strings.TrimSpace(name)
	for _, list := range [][]string{Wallets, linkableBanks} {
		for _, p := range list {
			if strings.EqualFold(p, name) {
				return p
			}
		}
	}
	return name
}

// BillServices lists the bill-payment services in display order.
func BillServices() []string {
	return []string{ServiceMobileRecharge, ServiceElectricity, ServiceGas, ServiceWater, ServiceInternet, ServiceTV, ServiceCity}
}

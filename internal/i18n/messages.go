package i18n

// KeyInvalidLogin is the message shown for rejected credentials.
const KeyInvalidLogin = "invalid_login"

var nlNL = map[string]string{
	"title":            "Kilometerregistratie",
	"login":            "Inloggen",
	"logout":           "Uitloggen",
	"username":         "Gebruikersnaam",
	"password":         "Wachtwoord",
	"date":             "Datum",
	"start_location":   "Vertreklocatie",
	"end_location":     "Bestemmingslocatie",
	"start_odometer":   "Kilometerstand begin",
	"end_odometer":     "Kilometerstand eind",
	"distance_km":      "Afstand (km)",
	"purpose":          "Doel van de rit",
	"trip_type":        "Type rit",
	"license_plate":    "Kenteken",
	"client_project":   "Klant/Project",
	"notes":            "Opmerkingen",
	"fuel_cost":        "Brandstofkosten",
	"parking_cost":     "Parkeerkosten",
	"toll_cost":        "Tol/Vignetten",
	"add_trip":         "Rit Toevoegen",
	"recent_trips":     "Recente Ritten",
	"vehicles":         "Voertuigen",
	"settings":         "Instellingen",
	"webhook_url":      "Webhook URL",
	"webhook_enabled":  "Webhook Ingeschakeld",
	"mileage_rate":     "Kilometervergoeding",
	"save_settings":    "Instellingen Opslaan",
	"delete":           "Verwijderen",
	"edit":             "Bewerken",
	"cancel":           "Annuleren",
	"save":             "Opslaan",
	"today":            "Vandaag",
	"this_week":        "Deze Week",
	"this_month":       "Deze Maand",
	"invalid_login":    "Ongeldige inloggegevens",
	"trip_added":       "Rit toegevoegd",
	"trip_updated":     "Rit bijgewerkt",
	"trip_deleted":     "Rit verwijderd",
	"settings_saved":   "Instellingen opgeslagen",
	"total_km":         "Totaal km",
	"total_cost":       "Totale kosten",
	"reimbursement":    "Vergoeding",
	"business":         "Zakelijk",
	"private":          "Privé",
	"commute":          "Woon-werk",
	"add_vehicle":      "Voertuig Toevoegen",
	"brand":            "Merk",
	"model":            "Model",
	"fuel_type":        "Brandstoftype",
	"lease_company":    "Leasemaatschappij",
	"summary":          "Overzicht",
	"export":           "Exporteren",
	"monthly_overview": "Maandoverzicht",
	"Petrol":           "Benzine",
	"Diesel":           "Diesel",
	"Hybrid":           "Hybride",
	"Electric":         "Elektrisch",
	"LPG":              "LPG",
}

var enUS = map[string]string{
	"title":            "Mileage Log",
	"login":            "Log in",
	"logout":           "Log out",
	"username":         "Username",
	"password":         "Password",
	"date":             "Date",
	"start_location":   "Start location",
	"end_location":     "Destination",
	"start_odometer":   "Start odometer",
	"end_odometer":     "End odometer",
	"distance_km":      "Distance (km)",
	"purpose":          "Purpose",
	"trip_type":        "Trip type",
	"license_plate":    "License plate",
	"client_project":   "Client/Project",
	"notes":            "Notes",
	"fuel_cost":        "Fuel cost",
	"parking_cost":     "Parking cost",
	"toll_cost":        "Tolls/Vignettes",
	"add_trip":         "Add Trip",
	"recent_trips":     "Recent Trips",
	"vehicles":         "Vehicles",
	"settings":         "Settings",
	"webhook_url":      "Webhook URL",
	"webhook_enabled":  "Webhook Enabled",
	"mileage_rate":     "Mileage rate",
	"save_settings":    "Save Settings",
	"delete":           "Delete",
	"edit":             "Edit",
	"cancel":           "Cancel",
	"save":             "Save",
	"today":            "Today",
	"this_week":        "This Week",
	"this_month":       "This Month",
	"invalid_login":    "Invalid credentials",
	"trip_added":       "Trip added",
	"trip_updated":     "Trip updated",
	"trip_deleted":     "Trip deleted",
	"settings_saved":   "Settings saved",
	"total_km":         "Total km",
	"total_cost":       "Total cost",
	"reimbursement":    "Reimbursement",
	"business":         "Business",
	"private":          "Private",
	"commute":          "Commute",
	"add_vehicle":      "Add Vehicle",
	"brand":            "Brand",
	"model":            "Model",
	"fuel_type":        "Fuel type",
	"lease_company":    "Lease company",
	"summary":          "Summary",
	"export":           "Export",
	"monthly_overview": "Monthly Overview",
	"Petrol":           "Petrol",
	"Diesel":           "Diesel",
	"Hybrid":           "Hybrid",
	"Electric":         "Electric",
	"LPG":              "LPG",
}

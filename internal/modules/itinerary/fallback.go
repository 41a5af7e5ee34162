package itinerary

// FallbackID identifies the canned Rome itinerary returned when generation fails.
const FallbackID = "66cf0e7c9b1d2a4f3e8c5494"

var fallback = Itinerary{
	ID:            FallbackID,
	Country:       "Italy",
	TravelMode:    ModeBike,
	TotalDistance: 74,
	Day1: DayPlan{
		DailyDistance: 12,
		DayRecap:      "A compact loop through ancient and baroque Rome, from the Colosseum across the historic centre to the Vatican.",
		Waypoints: Waypoints{
			{
				Name:        "Colosseum",
				Position:    Position{41.8902, 12.4922},
				Information: "The largest amphitheatre ever built, completed in 80 AD. Gladiator games once drew up to 50,000 spectators here.",
			},
			{
				Name:        "Roman Forum",
				Position:    Position{41.8925, 12.4853},
				Information: "The political heart of ancient Rome. Walk among the ruins of temples, basilicas and the Senate house.",
				HasTrek:     true,
				TrekDetails: "A 2 km walking trail climbs from the Forum up the Palatine Hill with views over the Circus Maximus.",
			},
			{
				Name:        "Pantheon",
				Position:    Position{41.8986, 12.4769},
				Information: "A Roman temple turned church with the world's largest unreinforced concrete dome. The oculus is open to the sky.",
			},
			{
				Name:        "Piazza Navona",
				Position:    Position{41.8992, 12.4731},
				Information: "Built on the outline of the Stadium of Domitian. Bernini's Fountain of the Four Rivers sits at its centre.",
			},
			{
				Name:        "St. Peter's Square",
				Position:    Position{41.9022, 12.4539},
				Information: "Bernini's colonnade embraces the square in front of St. Peter's Basilica. The dome can be climbed for a view over the city.",
			},
		},
	},
	Day2: DayPlan{
		DailyDistance: 24,
		DayRecap:      "From the Vatican through Trastevere and down the ancient Appian Way, ending among the villas of the southern park.",
		Waypoints: Waypoints{
			{
				Name:        "St. Peter's Square",
				Position:    Position{41.9022, 12.4539},
				Information: "Start the day early before the crowds arrive. The square is quiet at sunrise.",
			},
			{
				Name:        "Trastevere",
				Position:    Position{41.8897, 12.4694},
				Information: "A medieval neighbourhood of cobbled lanes and ivy-covered houses. Santa Maria in Trastevere holds 12th century mosaics.",
			},
			{
				Name:        "Baths of Caracalla",
				Position:    Position{41.8790, 12.4925},
				Information: "Massive imperial baths that could hold 1,600 bathers. Summer opera is staged among the ruins.",
			},
			{
				Name:        "Catacombs of San Callisto",
				Position:    Position{41.8592, 12.5107},
				Information: "Underground Christian burial galleries spread over 20 km on four levels. Guided tours descend into the crypt of the popes.",
			},
			{
				Name:        "Villa dei Quintili",
				Position:    Position{41.8283, 12.5446},
				Information: "The ruins of a vast 2nd century villa along the Appian Way. Emperor Commodus seized it for himself.",
				HasTrek:     true,
				TrekDetails: "The Appia Antica park has a 10 km gravel path along the original Roman paving stones.",
			},
		},
	},
	Day3: DayPlan{
		DailyDistance: 38,
		DayRecap:      "Leaving the city behind for the aqueducts and the volcanic lakes of the Castelli Romani hills.",
		Waypoints: Waypoints{
			{
				Name:        "Villa dei Quintili",
				Position:    Position{41.8283, 12.5446},
				Information: "Depart from the Appian Way heading east towards the aqueduct park.",
			},
			{
				Name:        "Parco degli Acquedotti",
				Position:    Position{41.8536, 12.5585},
				Information: "Arches of six ancient aqueducts cross open meadows. A favourite of photographers at golden hour.",
				HasTrek:     true,
				TrekDetails: "A flat 4 km loop follows the Claudian aqueduct arches through the park.",
			},
			{
				Name:        "Frascati",
				Position:    Position{41.8083, 12.6806},
				Information: "A hill town known for its white wine and Renaissance villas. Villa Aldobrandini overlooks Rome from its terraces.",
			},
			{
				Name:        "Castel Gandolfo",
				Position:    Position{41.7472, 12.6508},
				Information: "The papal summer residence perched on the rim of Lake Albano. The gardens of the Apostolic Palace are open to visitors.",
				HasTrek:     true,
				TrekDetails: "A steep 3 km path descends from the town to the lake shore.",
			},
			{
				Name:        "Nemi",
				Position:    Position{41.7206, 12.7206},
				Information: "A tiny village above a crater lake, famous for wild strawberries. The Museum of Roman Ships recalls Caligula's floating palaces.",
			},
		},
	},
}

// Fallback returns a fresh copy of the canned Rome itinerary.
func Fallback() *Itinerary {
	return fallback.Clone()
}

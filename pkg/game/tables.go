package game

// The generation tables. Weights are relative and do not need to sum to
// anything in particular. Display strings are what players see on their
// character cards.

// healthyState is the distinguished health value that never carries a
// severity stage.
const healthyState = "Healthy"

type ageBucket struct {
	min, max int
}

var genders = []weighted[string]{
	w("Male", 48),
	w("Female", 48),
	w("Nonbinary", 4),
}

// genderAffixes add a flavor detail folded into the gender slot.
var genderAffixes = []weighted[string]{
	w("fertile", 30),
	w("infertile", 10),
	w("single", 30),
	w("divorced", 15),
	w("widowed", 10),
	w("secretly married", 5),
}

var ageBuckets = []weighted[ageBucket]{
	w(ageBucket{12, 17}, 8),
	w(ageBucket{18, 29}, 30),
	w(ageBucket{30, 49}, 35),
	w(ageBucket{50, 69}, 20),
	w(ageBucket{70, 95}, 7),
}

// heightBracket holds the normal-distribution parameters used for one
// age bracket.
type heightBracket struct {
	maxAge       int // bracket applies while age < maxAge
	mean, stddev float64
}

var heightBrackets = []heightBracket{
	{maxAge: 18, mean: 160, stddev: 20},
	{maxAge: 30, mean: 180, stddev: 15},
	{maxAge: 50, mean: 175, stddev: 10},
}

// heightBracketElder applies at ages past the last bracket boundary.
var heightBracketElder = heightBracket{mean: 170, stddev: 8}

const (
	heightFemaleShift = -10
	heightMin         = 150
	heightMax         = 210
)

var bodyTypes = []weighted[string]{
	w("Slim", 20),
	w("Athletic", 20),
	w("Average build", 30),
	w("Stocky", 15),
	w("Overweight", 12),
	w("Heavily obese", 3),
}

var traits = []string{
	"Honest to a fault",
	"Compulsive liar",
	"Natural leader",
	"Coward",
	"Hot-tempered",
	"Calm under pressure",
	"Greedy",
	"Selfless",
	"Paranoid",
	"Charismatic",
	"Stubborn",
	"Pessimist",
	"Relentless optimist",
	"Manipulative",
	"Easily bored",
	"Hoarder",
}

var professions = []string{
	"Surgeon",
	"Electrician",
	"Teacher",
	"Farmer",
	"Soldier",
	"Cook",
	"Mechanic",
	"Nurse",
	"Carpenter",
	"Chemist",
	"Firefighter",
	"Software developer",
	"Psychologist",
	"Plumber",
	"Hunter",
	"Tailor",
	"Radio operator",
	"Librarian",
	"Professional gambler",
	"Influencer",
}

var skillLevels = []weighted[string]{
	w("novice", 25),
	w("amateur", 30),
	w("experienced", 25),
	w("professional", 15),
	w("world-class expert", 5),
}

var healthStates = []weighted[string]{
	w(healthyState, 35),
	w("Asthma", 8),
	w("Diabetes", 8),
	w("Heart condition", 7),
	w("Poor eyesight", 10),
	w("Deafness", 5),
	w("Chronic back pain", 8),
	w("Severe allergies", 8),
	w("Insomnia", 6),
	w("Missing limb", 3),
	w("Cancer", 2),
}

var healthStages = []weighted[string]{
	w("mild", 40),
	w("moderate", 35),
	w("severe", 20),
	w("terminal", 5),
}

var hobbies = []string{
	"Gardening",
	"Amateur radio",
	"Chess",
	"Brewing",
	"First aid courses",
	"Lockpicking",
	"Marathon running",
	"Knitting",
	"Astronomy",
	"Mushroom foraging",
	"Martial arts",
	"Taxidermy",
	"Board games",
	"Beekeeping",
	"Origami",
	"Video games",
}

var phobias = []string{
	"Fear of the dark",
	"Claustrophobia",
	"Fear of blood",
	"Fear of heights",
	"Germophobia",
	"Fear of loud noises",
	"Fear of dogs",
	"Fear of fire",
	"Fear of crowds",
	"Fear of insects",
	"Fear of water",
	"Fear of being alone",
}

var largeItems = []string{
	"Diesel generator",
	"Water purifier",
	"Crate of medical supplies",
	"Welding rig",
	"Greenhouse kit",
	"Gun safe (locked, no key)",
	"Industrial freezer",
	"Motorcycle",
	"Upright piano",
	"Solar panel array",
	"Barrel of fuel",
	"Sewing machine",
}

// backpackItem is a backpack pool entry. Items with a count range get a
// uniformly drawn quantity appended to the display text.
type backpackItem struct {
	name     string
	min, max int // zero range means a single unnamed-count item
}

var backpackItems = []backpackItem{
	{name: "Canned food", min: 2, max: 8},
	{name: "Bottled water", min: 1, max: 6},
	{name: "Antibiotics", min: 1, max: 3},
	{name: "Flashlight"},
	{name: "Batteries", min: 2, max: 10},
	{name: "Hunting knife"},
	{name: "Rope (20 m)"},
	{name: "Matches", min: 1, max: 5},
	{name: "First aid kit"},
	{name: "Gas mask"},
	{name: "Seed packets", min: 3, max: 12},
	{name: "Deck of cards"},
	{name: "Hand-crank radio"},
	{name: "Duct tape", min: 1, max: 4},
}

const backpackMaxItems = 3

var facts = []string{
	"Knows morse code",
	"Once survived a shipwreck",
	"Is allergic to penicillin",
	"Has an identical twin",
	"Speaks four languages",
	"Was in prison for fraud",
	"Can't swim",
	"Is a sleepwalker",
	"Donated a kidney",
	"Has a photographic memory",
	"Believes the disaster was staged",
	"Owes money to everyone present",
}

const specialAbilityChance = 0.25

var specialAbilities = []string{
	"Can reroll one of their own attributes once",
	"May peek at one hidden attribute of another player",
	"Their exile vote counts twice, once per game",
	"Can swap backpacks with another player once",
	"Immune to the first tied vote against them",
	"May force one player to reveal an attribute of choice",
}

// Bunker tables.

var bunkerThemes = []string{
	"Nuclear war",
	"Global pandemic",
	"Asteroid impact",
	"Supervolcano eruption",
	"AI uprising",
	"Zombie outbreak",
	"Climate collapse",
	"Alien invasion",
	"Solar superflare",
	"Engineered famine",
}

var bunkerSizes = []string{
	"Cramped (40 m²)",
	"Modest (100 m²)",
	"Spacious (250 m²)",
	"Vast multi-level complex (600 m²)",
}

var bunkerDurations = []string{
	"6 months",
	"1 year",
	"3 years",
	"10 years",
	"Indefinite",
}

var bunkerFoodSupplies = []string{
	"Barely enough for half the group",
	"Rationed but sufficient",
	"Well stocked",
	"Overflowing storerooms",
}

var bunkerItems = []string{
	"Hydroponic garden",
	"Medical bay",
	"Armory with three rifles",
	"Library of paper books",
	"Workshop with power tools",
	"Water recycling system",
	"Radio transmitter",
	"Wine cellar",
	"Gym equipment",
	"Chapel",
	"Server rack with offline archives",
	"Chicken coop",
}

const bunkerMaxItems = 5

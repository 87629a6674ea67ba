package domain

// DieSides is the face count of each movement die.
const DieSides = 6

// DiceRoll is the result of rolling the two movement dice.
type DiceRoll struct {
	First  int
	Second int
}

// Total is the number of moves granted.
func (r DiceRoll) Total() int {
	return r.First + r.Second
}

// RollDice rolls two independent six-sided dice.
func RollDice(rng Rand) DiceRoll {
	return DiceRoll{First: rollDie(rng, DieSides), Second: rollDie(rng, DieSides)}
}

func rollDie(rng Rand, sides int) int {
	return rng.Intn(sides) + 1
}

package model

import "fmt"

// Catalog returns the fixed seed list. Ids are stable; episodes are never
// created or deleted at runtime, only their status fields mutate.
func Catalog() []Episode {
	titles := []string{
		"Chapter 1: The Mandalorian",
		"Chapter 2: The Child",
		"Chapter 3: The Sin",
		"Chapter 4: Sanctuary",
		"Chapter 5: The Gunslinger",
		"Chapter 6: The Prisoner",
		"Chapter 7: The Reckoning",
		"Chapter 8: Redemption",
		"Chapter 9: The Marshal",
		"Chapter 10: The Passenger",
		"Chapter 11: The Heiress",
		"Chapter 12: The Siege",
		"Chapter 13: The Jedi",
		"Chapter 14: The Tragedy",
		"Chapter 15: The Believer",
		"Chapter 16: The Rescue",
		"Chapter 17: The Apostate",
		"Chapter 18: The Mines of Mandalore",
		"Chapter 19: The Convert",
		"Chapter 20: The Foundling",
		"Chapter 21: The Pirate",
		"Chapter 22: Guns for Hire",
		"Chapter 23: The Spies",
		"Chapter 24: The Return",
	}

	out := make([]Episode, 0, len(titles))
	for i, title := range titles {
		id := int64(i + 1)
		out = append(out, Episode{
			ID:     id,
			Title:  title,
			Status: StatusAvailable,
			Image:  imagePath(id),
		})
	}
	return out
}

func imagePath(id int64) string {
	return fmt.Sprintf("/images/cap%d.jpg", id)
}

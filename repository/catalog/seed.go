package catalogrepo

import "fmt"

type seedEntry struct {
	title string
	qty   int
}

// Startup catalogs per branch, ids prefix+0001..0005.
var seeds = map[string][]seedEntry{
	"CON": {
		{"Hamlet by William Shakespeare", 1},
		{"War and Peace by Leo Tolstoy", 3},
		{"The Odyssey by Homer", 2},
		{"One Hundred Years of Solitude by Gabriel Garcia Marquez", 1},
		{"The Divine Comedy by Dante Alighieri", 4},
	},
	"MCG": {
		{"Hamlet by William Shakespeare", 2},
		{"Don Quixote by Miguel de Cervantes", 1},
		{"Ulysses by James Joyce", 2},
		{"The Great Gatsby by F. Scott Fitzgerald", 4},
		{"Moby Dick by Herman Melville", 5},
	},
	"MON": {
		{"Hamlet by William Shakespeare", 3},
		{"The Divine Comedy by Dante Alighieri", 3},
		{"The Brothers Karamazov by Fyodor Dostoyevsky", 1},
		{"Madame Bovary by Gustave Flaubert", 1},
		{"The Adventures of Huckleberry Finn by Mark Twain", 1},
	},
}

// Seed loads the branch's fixed startup catalog. Unknown prefixes start empty.
func Seed(r Repo, prefix string) error {
	for i, e := range seeds[prefix] {
		id := fmt.Sprintf("%s%04d", prefix, i+1)
		if err := r.AddOrRestock(id, e.title, e.qty); err != nil {
			return fmt.Errorf("seed %s: %w", id, err)
		}
	}
	return nil
}

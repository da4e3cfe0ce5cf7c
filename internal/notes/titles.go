package notes

import "fmt"

// TitleRegistry hands out unique note titles for one run: the first use of a
// title is returned unchanged, later ones get " 2", " 3", ... appended.
type TitleRegistry struct {
	seen map[string]int
}

func NewTitleRegistry() *TitleRegistry {
	return &TitleRegistry{seen: make(map[string]int)}
}

// Seed marks titles as already present in Notes.
func (r *TitleRegistry) Seed(titles []string) {
	for _, title := range titles {
		if _, ok := r.seen[title]; !ok {
			r.seen[title] = 0
		}
	}
}

// Claim returns a unique title derived from base. Numbered titles are
// registered too, so a later entry literally titled "X 2" is numbered again.
func (r *TitleRegistry) Claim(base string) string {
	count, ok := r.seen[base]
	if !ok {
		r.seen[base] = 0
		return base
	}
	for {
		count++
		candidate := fmt.Sprintf("%s %d", base, count+1)
		if _, taken := r.seen[candidate]; taken {
			continue
		}
		r.seen[base] = count
		r.seen[candidate] = 0
		return candidate
	}
}

// Contains reports whether base was claimed or seeded.
func (r *TitleRegistry) Contains(base string) bool {
	_, ok := r.seen[base]
	return ok
}

func (r *TitleRegistry) Len() int {
	return len(r.seen)
}

package curriculum

import (
	"sort"

	"github.com/currforge/currforge/agent"
)

// catalog maps book slugs to their metadata. Requests referencing a slug
// outside the catalog fall back to a generic entry rather than failing.
var catalog = map[string]agent.BookInfo{
	"to-kill-a-mockingbird": {Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960, Pages: 324},
	"great-gatsby":          {Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925, Pages: 180},
	"scarlet-letter":        {Title: "The Scarlet Letter", Author: "Nathaniel Hawthorne", Year: 1850, Pages: 238},
	"of-mice-and-men":       {Title: "Of Mice and Men", Author: "John Steinbeck", Year: 1937, Pages: 107},
	"grapes-of-wrath":       {Title: "The Grapes of Wrath", Author: "John Steinbeck", Year: 1939, Pages: 464},
	"catcher-in-rye":        {Title: "The Catcher in the Rye", Author: "J.D. Salinger", Year: 1951, Pages: 277},
	"adventures-huck-finn":  {Title: "Adventures of Huckleberry Finn", Author: "Mark Twain", Year: 1884, Pages: 366},
	"romeo-juliet":          {Title: "Romeo and Juliet", Author: "William Shakespeare", Year: 1597, Pages: 150},
	"hamlet":                {Title: "Hamlet", Author: "William Shakespeare", Year: 1603, Pages: 200},
	"macbeth":               {Title: "Macbeth", Author: "William Shakespeare", Year: 1623, Pages: 130},
	"othello":               {Title: "Othello", Author: "William Shakespeare", Year: 1622, Pages: 165},
	"midsummer-night":       {Title: "A Midsummer Night's Dream", Author: "William Shakespeare", Year: 1600, Pages: 120},
	"julius-caesar":         {Title: "Julius Caesar", Author: "William Shakespeare", Year: 1623, Pages: 140},
	"1984":                  {Title: "1984", Author: "George Orwell", Year: 1949, Pages: 328},
	"animal-farm":           {Title: "Animal Farm", Author: "George Orwell", Year: 1945, Pages: 112},
	"brave-new-world":       {Title: "Brave New World", Author: "Aldous Huxley", Year: 1932, Pages: 311},
	"lord-of-flies":         {Title: "Lord of the Flies", Author: "William Golding", Year: 1954, Pages: 224},
	"pride-prejudice":       {Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813, Pages: 279},
	"frankenstein":          {Title: "Frankenstein", Author: "Mary Shelley", Year: 1818, Pages: 280},
	"odyssey":               {Title: "The Odyssey", Author: "Homer", Year: -800, Pages: 541},
	"iliad":                 {Title: "The Iliad", Author: "Homer", Year: -762, Pages: 704},
	"oedipus-rex":           {Title: "Oedipus Rex", Author: "Sophocles", Year: -429, Pages: 75},
	"metamorphosis":         {Title: "The Metamorphosis", Author: "Franz Kafka", Year: 1915, Pages: 70},
	"night":                 {Title: "Night", Author: "Elie Wiesel", Year: 1960, Pages: 120},
	"death-of-salesman":     {Title: "Death of a Salesman", Author: "Arthur Miller", Year: 1949, Pages: 139},
	"crucible":              {Title: "The Crucible", Author: "Arthur Miller", Year: 1953, Pages: 143},
	"raisin-in-sun":         {Title: "A Raisin in the Sun", Author: "Lorraine Hansberry", Year: 1959, Pages: 151},
	"poetry-anthology":      {Title: "Poetry Anthology", Author: "Various Poets", Year: 2024, Pages: 200},
}

var genericBook = agent.BookInfo{Title: "Selected Literary Work", Author: "Various", Year: 2024, Pages: 200}

// LookupBook returns metadata for a book slug, with a generic fallback for
// unknown slugs.
func LookupBook(slug string) (agent.BookInfo, bool) {
	info, ok := catalog[slug]
	if !ok {
		return genericBook, false
	}
	return info, true
}

// Book pairs a catalog slug with its metadata for listings.
type Book struct {
	Slug string `json:"slug"`
	agent.BookInfo
}

// Books returns the catalog sorted by slug.
func Books() []Book {
	out := make([]Book, 0, len(catalog))
	for slug, info := range catalog {
		out = append(out, Book{Slug: slug, BookInfo: info})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Package mockdata generates demo collections for the admin screens. The
// same kind, size and seed always give the same records.
package mockdata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fulldump/tableview/view"
)

const (
	KindProducts = "products"
	KindOrders   = "orders"
	KindUsers    = "users"
)

var ErrUnknownKind = errors.New("unknown mock kind")

// Epoch is the most recent creation date a generated record can have.
var Epoch = time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)

var Kinds = []string{KindProducts, KindOrders, KindUsers}

type generator struct {
	source *rand.ChaCha8
	rand   *rand.Rand
}

func newGenerator(seed uint64) *generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	source := rand.NewChaCha8(key)
	return &generator{
		source: source,
		rand:   rand.New(source),
	}
}

func (g *generator) uuid() string {
	id, err := uuid.NewRandomFromReader(g.source)
	if err != nil {
		panic(err) // ChaCha8 never fails to read
	}
	return id.String()
}

func (g *generator) pick(options []string) string {
	return options[g.rand.IntN(len(options))]
}

func (g *generator) price(min, max float64) float64 {
	return math.Round((min+g.rand.Float64()*(max-min))*100) / 100
}

// date returns a timestamp within the last days before Epoch.
func (g *generator) date(days int) string {
	ago := time.Duration(g.rand.Int64N(int64(days) * int64(24*time.Hour)))
	return Epoch.Add(-ago).Truncate(time.Second).Format(time.RFC3339)
}

func Generate(kind string, n int, seed uint64) ([]view.Record, error) {
	switch kind {
	case KindProducts:
		return Products(n, seed), nil
	case KindOrders:
		return Orders(n, seed), nil
	case KindUsers:
		return Users(n, seed), nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownKind, kind)
}

var (
	categories = []string{"electronics", "clothing", "home", "books", "sports"}
	adjectives = []string{"Classic", "Smart", "Ultra", "Eco", "Vintage", "Pro", "Compact", "Deluxe"}
	nouns      = map[string][]string{
		"electronics": {"Headphones", "Speaker", "Monitor", "Keyboard", "Charger"},
		"clothing":    {"Jacket", "Sneakers", "T-Shirt", "Scarf", "Jeans"},
		"home":        {"Lamp", "Kettle", "Blanket", "Mug", "Chair"},
		"books":       {"Cookbook", "Novel", "Atlas", "Notebook", "Biography"},
		"sports":      {"Yoga Mat", "Dumbbell", "Bottle", "Racket", "Helmet"},
	}
	productStatuses = []string{"active", "active", "active", "inactive", "draft"}
	orderStatuses   = []string{"pending", "processing", "shipped", "delivered", "delivered", "cancelled"}
	roles           = []string{"customer", "customer", "customer", "customer", "staff", "admin"}
	userStatuses    = []string{"active", "active", "active", "inactive", "banned"}
	firstNames      = []string{"Alice", "Bruno", "Carmen", "David", "Élodie", "Fatima", "Gustav", "Hiroshi", "Inés", "Jamal", "Katarzyna", "Liam"}
	lastNames       = []string{"García", "Smith", "Nowak", "Tanaka", "Okafor", "Müller", "Rossi", "Dubois", "Silva", "Kim"}
)

func Products(n int, seed uint64) []view.Record {
	g := newGenerator(seed)
	records := make([]view.Record, 0, n)
	for i := 0; i < n; i++ {
		category := g.pick(categories)
		name := g.pick(adjectives) + " " + g.pick(nouns[category])
		stock := float64(g.rand.IntN(200))
		if g.rand.IntN(8) == 0 {
			stock = 0
		}
		records = append(records, view.Record{
			"id":        g.uuid(),
			"name":      name,
			"sku":       fmt.Sprintf("%s-%05d", strings.ToUpper(category[:3]), i+1),
			"category":  category,
			"price":     g.price(5, 500),
			"stock":     stock,
			"status":    g.pick(productStatuses),
			"featured":  g.rand.IntN(5) == 0,
			"createdAt": g.date(365),
		})
	}
	return records
}

func Orders(n int, seed uint64) []view.Record {
	g := newGenerator(seed)
	records := make([]view.Record, 0, n)
	for i := 0; i < n; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		status := g.pick(orderStatuses)
		records = append(records, view.Record{
			"id":        fmt.Sprintf("ORD-%05d", i+1),
			"customer":  first + " " + last,
			"email":     email(first, last),
			"status":    status,
			"total":     g.price(10, 1500),
			"items":     float64(1 + g.rand.IntN(6)),
			"paid":      status != "pending" && status != "cancelled",
			"createdAt": g.date(90),
		})
	}
	return records
}

func Users(n int, seed uint64) []view.Record {
	g := newGenerator(seed)
	records := make([]view.Record, 0, n)
	for i := 0; i < n; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		record := view.Record{
			"id":        g.uuid(),
			"name":      first + " " + last,
			"email":     email(first, last),
			"role":      g.pick(roles),
			"status":    g.pick(userStatuses),
			"verified":  g.rand.IntN(4) != 0,
			"orders":    float64(g.rand.IntN(40)),
			"createdAt": g.date(730),
		}
		if g.rand.IntN(6) != 0 {
			record["lastLogin"] = g.date(30)
		}
		records = append(records, record)
	}
	return records
}

var emailReplacer = strings.NewReplacer("é", "e", "É", "e", "á", "a", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n", " ", "")

func email(first, last string) string {
	return strings.ToLower(emailReplacer.Replace(first+"."+last)) + "@example.com"
}

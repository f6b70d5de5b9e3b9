package simulation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

var (
	seedTypes   = []entities.MedicineType{entities.Tablets, entities.Spray, entities.Ointment, entities.Drops}
	seedGroups  = []entities.MedicineGroup{entities.Heart, entities.Antibiotic, entities.Painkiller}
	seedDosages = []int{50, 100, 200}
)

// GenerateCatalogRows produces n random catalog rows in the column order
// accepted by NewSimulation
func GenerateCatalogRows(rng Randomness, n int) [][]string {
	rows := make([][]string, 0, n)
	for i := range n {
		wholesale := 10 + rng.Float64()*90
		rows = append(rows, []string{
			fmt.Sprintf("Лекарство %d", i+1),
			strconv.Itoa(rng.IntRange(50, 200)),
			strconv.Itoa(seedDosages[rng.IntN(len(seedDosages))]),
			seedTypes[rng.IntN(len(seedTypes))].String(),
			strconv.Itoa(rng.IntRange(10, 365)),
			strconv.FormatFloat(wholesale, 'f', 2, 64),
			seedGroups[rng.IntN(len(seedGroups))].String(),
			strconv.Itoa(rng.IntRange(20, 100)),
			strconv.Itoa(rng.IntRange(5, 20)),
		})
	}
	return rows
}

// GenerateCustomerRows produces n random regular-customer rows whose templates
// draw 1..3 medicines from names
func GenerateCustomerRows(rng Randomness, names []string, n int) [][]string {
	rows := make([][]string, 0, n)
	for i := range n {
		card := "Нет"
		if rng.Float64() > 0.5 {
			card = "Да"
		}

		var template []string
		if len(names) > 0 {
			for range rng.IntRange(1, 3) {
				template = append(template, fmt.Sprintf("%s:%d", names[rng.IntN(len(names))], rng.IntRange(1, 5)))
			}
		}

		rows = append(rows, []string{
			fmt.Sprintf("Постоянный %d", i+1),
			fmt.Sprintf("+7%d", rng.IntRange(9000000000, 9999999999)),
			fmt.Sprintf("ул. %s, %d", streets[rng.IntN(len(streets))], rng.IntRange(1, 100)),
			card,
			strings.Join(template, ", "),
			strconv.Itoa(rng.IntRange(2, 7)),
		})
	}
	return rows
}

package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/vsinha/pharmsim/pkg/application/services/simulation"
)

func main() {
	// Three medicines: name, count, dosage, type, expiration days, wholesale,
	// group, purchase quantity, min quantity
	catalog := [][]string{
		{"Амоксициллин", "120", "500", "Таблетки", "90", "45.50", "Антибиотики", "50", "10"},
		{"Нурофен", "80", "200", "Таблетки", "25", "120", "Обезболивающие", "40", "20"},
		{"Корвалол", "30", "25", "Капли", "365", "60.50", "Сердечные", "30", "5"},
	}

	// One regular customer ordering every 3 days
	customers := [][]string{
		{"Иванов", "+79001234567", "ул. Ленина, 5", "Да", "Амоксициллин:2, Нурофен:1", "3"},
	}

	params := simulation.DefaultParams()
	params.Days = 14
	params.Couriers = 1
	params.Seed = 2024

	sim, err := simulation.NewSimulation(params, catalog, customers)
	if err != nil {
		log.Fatalf("Error creating simulation: %v", err)
	}

	fmt.Println("💊 Running pharmacy for two weeks...")
	fmt.Printf("Order intensity: %.2f orders/day\n\n", params.OrderIntensity())

	totalProfit := decimal.Zero
	for !sim.IsComplete() {
		day, err := sim.NextDay()
		if err != nil {
			log.Fatalf("Error on day %d: %v", sim.Day()+1, err)
		}
		totalProfit = totalProfit.Add(day.Profit)

		fmt.Printf("Day %2d: %2d orders, revenue %8s, profit %8s, losses %7s\n",
			day.Day,
			len(day.Orders),
			day.Revenue.StringFixed(2),
			day.Profit.StringFixed(2),
			day.Losses.StringFixed(2))
	}

	fmt.Printf("\n📦 Warehouse after %d days:\n", sim.Day())
	for _, sku := range sim.Warehouse().SKUs {
		pending := "-"
		if sku.Pending != nil {
			pending = fmt.Sprintf("%d units in %d days", sku.Pending.Count, sku.Pending.LeadTimeDays)
		}
		fmt.Printf("  %-14s %4d units in %d batches, pending: %s\n",
			sku.Medicine.Name, sku.Count, len(sku.Batches), pending)
	}

	fmt.Printf("\nTotal profit: %s\n", totalProfit.StringFixed(2))
}

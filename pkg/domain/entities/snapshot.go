package entities

// BatchSnapshot is a point-in-time copy of one batch
type BatchSnapshot struct {
	Count         Quantity
	ShelfLifeDays int
}

// PendingSnapshot is a point-in-time copy of a replenishment in transit
type PendingSnapshot struct {
	Count        Quantity
	LeadTimeDays int
}

// SKUSnapshot is a point-in-time copy of one SKU
type SKUSnapshot struct {
	Medicine         Medicine
	Batches          []BatchSnapshot
	Pending          *PendingSnapshot
	Count            Quantity
	MinQuantity      Quantity
	PurchaseQuantity Quantity
}

// WarehouseSnapshot is an independently owned copy of warehouse state, in catalog order
type WarehouseSnapshot struct {
	SKUs []SKUSnapshot
}

// Snapshot copies the SKU state; the result shares no memory with the SKU
func (s *StockKeepingUnit) Snapshot() SKUSnapshot {
	snap := SKUSnapshot{
		Medicine:         s.medicine,
		Batches:          make([]BatchSnapshot, len(s.batches)),
		Count:            s.count,
		MinQuantity:      s.medicine.MinQuantity,
		PurchaseQuantity: s.medicine.PurchaseQuantity,
	}
	for i, b := range s.batches {
		snap.Batches[i] = BatchSnapshot{Count: b.Count, ShelfLifeDays: b.ShelfLifeDays}
	}
	if s.pending != nil {
		snap.Pending = &PendingSnapshot{Count: s.pending.Count, LeadTimeDays: s.pendingDays}
	}
	return snap
}

// Find returns the snapshot of the named medicine
func (w WarehouseSnapshot) Find(name string) (SKUSnapshot, bool) {
	for _, sku := range w.SKUs {
		if sku.Medicine.Name == name {
			return sku, true
		}
	}
	return SKUSnapshot{}, false
}

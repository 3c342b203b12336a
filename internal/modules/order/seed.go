// README: Demo orders seeded into the mock-mode store.
package order

import (
	"context"
	"time"

	"speedyrider/internal/types"
)

// SeedDemo loads the demo parcel set. ORD-2024-001 starts mid-flow so the
// delivery screens have something to show; the rest sit in the pending pool.
func SeedDemo(ctx context.Context, store Store, riderID types.ID) error {
	now := time.Now()
	demo := []*Order{
		{
			ID:              "ORD-2024-001",
			RiderID:         &riderID,
			CustomerName:    "Maria Santos",
			CustomerPhone:   "+63 917 123 4567",
			PickupAddress:   "SM Megamall, EDSA corner J. Vargas Ave, Mandaluyong, Metro Manila",
			DeliveryAddress: "Unit 5B The Pearl Place, Ortigas Center, Pasig City, Metro Manila 1605",
			Items: []LineItem{
				{Name: "Electronics Package", Quantity: 1, UnitPrice: types.PHP(1499900)},
				{Name: "Accessories Box", Quantity: 2, UnitPrice: types.PHP(249900)},
			},
			SpecialInstructions: "Please call before arriving. Ring doorbell twice.",
			Status:              StatusAccepted,
			TotalAmount:         types.PHP(1999700),
			Distance:            "8.5 km",
			EstimatedTime:       "25 mins",
			Barcode:             "BAR123456789",
			OTP:                 "4582",
			PaymentStatus:       PaymentUnpaid,
			CreatedAt:           now.Add(-30 * time.Minute),
		},
		{
			ID:              "ORD-2024-002",
			CustomerName:    "Juan Dela Cruz",
			CustomerPhone:   "+63 918 234 5678",
			PickupAddress:   "Robinsons Galleria, EDSA corner Ortigas Ave, Quezon City, Metro Manila",
			DeliveryAddress: "Greenbelt 5, Ayala Center, Makati City, Metro Manila 1224",
			Items: []LineItem{
				{Name: "Document Envelope", Quantity: 1, UnitPrice: types.PHP(75000)},
			},
			SpecialInstructions: "Leave with reception if customer unavailable",
			Status:              StatusPending,
			TotalAmount:         types.PHP(75000),
			Distance:            "12.3 km",
			EstimatedTime:       "35 mins",
			Barcode:             "BAR987654321",
			OTP:                 "7391",
			PaymentStatus:       PaymentUnpaid,
			CreatedAt:           now.Add(-25 * time.Minute),
		},
		{
			ID:              "ORD-2024-003",
			CustomerName:    "Emma Wilson",
			CustomerPhone:   "+63 919 345 6789",
			PickupAddress:   "555 Market Street, Central Hub",
			DeliveryAddress: "789 Riverside Drive, Apartment 3C",
			Items: []LineItem{
				{Name: "Fashion Package", Quantity: 1, UnitPrice: types.PHP(14999)},
			},
			SpecialInstructions: "Handle with care - fragile items",
			Status:              StatusPending,
			TotalAmount:         types.PHP(14999),
			Distance:            "6.2 km",
			EstimatedTime:       "18 mins",
			Barcode:             "BAR456789123",
			OTP:                 "2847",
			PaymentStatus:       PaymentUnpaid,
			CreatedAt:           now.Add(-20 * time.Minute),
		},
		{
			ID:              "ORD-2024-004",
			CustomerName:    "David Martinez",
			CustomerPhone:   "+63 920 456 7890",
			PickupAddress:   "555 Market Street, Central Hub",
			DeliveryAddress: "234 Broadway, Floor 8",
			Items: []LineItem{
				{Name: "Office Supplies", Quantity: 3, UnitPrice: types.PHP(2999)},
			},
			Status:        StatusPending,
			TotalAmount:   types.PHP(8997),
			Distance:      "4.8 km",
			EstimatedTime: "15 mins",
			Barcode:       "BAR789123456",
			OTP:           "5629",
			PaymentStatus: PaymentUnpaid,
			CreatedAt:     now.Add(-15 * time.Minute),
		},
		{
			ID:              "ORD-2024-005",
			CustomerName:    "Lisa Anderson",
			CustomerPhone:   "+63 921 567 8901",
			PickupAddress:   "555 Market Street, Central Hub",
			DeliveryAddress: "567 Madison Avenue, Suite 201",
			Items: []LineItem{
				{Name: "Grocery Package", Quantity: 1, UnitPrice: types.PHP(7550)},
				{Name: "Fresh Produce Box", Quantity: 1, UnitPrice: types.PHP(4500)},
			},
			SpecialInstructions: "Deliver before 6 PM - perishable items",
			Status:              StatusPending,
			TotalAmount:         types.PHP(12050),
			Distance:            "9.1 km",
			EstimatedTime:       "28 mins",
			Barcode:             "BAR321654987",
			OTP:                 "8194",
			PaymentStatus:       PaymentUnpaid,
			CreatedAt:           now.Add(-10 * time.Minute),
		},
	}
	for _, o := range demo {
		if err := store.Create(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

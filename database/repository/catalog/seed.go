package catalogRepo

import (
	"fmt"
	"time"

	"jusbook/models"
)

const dateLayout = "2006-01-02"

// dailyTimes are the fixed appointment times offered every open day, in chronological order.
var dailyTimes = []string{
	"10:00 AM", "11:00 AM", "12:30 PM", "02:00 PM",
	"03:15 PM", "04:30 PM", "06:00 PM", "07:15 PM",
}

var staffOptions = []string{
	"Any Available Staff",
	"Senior Stylist",
	"Junior Stylist",
	"Specific Staff (Name if known)",
}

// preBookedRatio is the share of seeded slots left out as already taken.
const preBookedRatio = 0.3

func defaultServices() []models.Service {
	return []models.Service{
		{ID: "haircut", Name: "Haircut & Styling", Description: "Professional haircut and styling service", Duration: "45 minutes", Price: "₹500"},
		{ID: "hairwash", Name: "Hair Wash", Description: "Professional hair washing and conditioning service", Duration: "30 minutes", Price: "₹300"},
		{ID: "beardtrim", Name: "Beard Trim", Description: "Professional beard trimming and shaping", Duration: "25 minutes", Price: "₹250"},
		{ID: "haircolor", Name: "Hair Color", Description: "Professional hair coloring service", Duration: "120 minutes", Price: "₹1500"},
		{ID: "facial", Name: "Facial / Grooming", Description: "Deep cleansing facial and grooming treatment", Duration: "60 minutes", Price: "₹800"},
		{ID: "massage", Name: "Massage (Head / Shoulder)", Description: "Relaxing head and shoulder massage therapy", Duration: "45 minutes", Price: "₹600"},
		{ID: "kidshaircut", Name: "Kids Haircut", Description: "Specialized haircut service for children", Duration: "30 minutes", Price: "₹350"},
		{ID: "makeover", Name: "Complete Makeover Package", Description: "Complete makeover with multiple services", Duration: "180 minutes", Price: "₹2500"},
		{ID: "bridal", Name: "Bridal Grooming", Description: "Special bridal grooming and styling package", Duration: "240 minutes", Price: "₹5000"},
		{ID: "custom", Name: "Custom Service (Other)", Description: "Custom service as per your requirements", Duration: "60 minutes", Price: "Contact for pricing"},
	}
}

func defaultEvents(today time.Time) []models.Event {
	return []models.Event{
		{
			ID:              "workshop1",
			Title:           "Skincare Workshop",
			Date:            today.AddDate(0, 0, 5).Format(dateLayout),
			Time:            "02:00 PM",
			Description:     "Learn professional skincare techniques and tips",
			BookingRequired: true,
			Price:           "₹200",
		},
		{
			ID:              "demo1",
			Title:           "Hair Styling Demo",
			Date:            today.AddDate(0, 0, 10).Format(dateLayout),
			Time:            "11:00 AM",
			Description:     "Live demonstration of latest hair styling trends",
			BookingRequired: true,
			Price:           "Free",
		},
		{
			ID:              "sale1",
			Title:           "Weekend Beauty Sale",
			Date:            today.AddDate(0, 0, 12).Format(dateLayout),
			Time:            "10:00 AM - 6:00 PM",
			Description:     "Special discounts on all beauty services",
			BookingRequired: false,
			Price:           "Various",
		},
	}
}

func defaultContactInfo() models.ContactInfo {
	return models.ContactInfo{
		Phone:   "+91-9876543210",
		Email:   "contact@jusbook.com",
		Address: "123 Beauty Street, Jubilee Hills, Hyderabad, Telangana 500033",
		Website: "https://jusbook.com",
		Hours:   "Monday to Saturday: 9:00 AM - 7:00 PM (Closed Sundays)",
		SocialMedia: []models.SocialHandle{
			{Platform: "Instagram", Handle: "@jusbook_official"},
			{Platform: "Facebook", Handle: "facebook.com/jusbook"},
			{Platform: "Twitter", Handle: "@jusbook_com"},
		},
	}
}

// seedDay appends the slots of a single open day. Caller holds the write lock.
func (r *MemoryCatalogRepo) seedDay(day time.Time) int {
	date := day.Format(dateLayout)
	if _, done := r.seededDates[date]; done {
		return 0
	}
	r.seededDates[date] = struct{}{}

	// Closed on Sundays.
	if day.Weekday() == time.Sunday {
		return 0
	}

	added := 0
	for i, t := range dailyTimes {
		if r.rng.Float64() < preBookedRatio {
			continue
		}
		svc := r.services[r.rng.Intn(len(r.services))]
		slot := &models.Slot{
			SlotID:    r.uniqueSlotID(fmt.Sprintf("SL%s%02d", day.Format("0102"), i)),
			Date:      date,
			Day:       day.Weekday().String(),
			Time:      t,
			Service:   svc.Name,
			Duration:  svc.Duration,
			Available: true,
			Price:     svc.Price,
		}
		r.insertSlot(slot)
		added++
	}
	return added
}

package booking

import (
	"testing"
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

func TestIntervalOverlaps(t *testing.T) {
	d := day(t, "2026-09-07")

	iv := Interval{Start: ParseHM(d, "10:00"), End: ParseHM(d, "11:00")}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "10:15", "10:45", true},
		{"covers", "09:00", "12:00", true},
		{"partial head", "09:30", "10:30", true},
		{"partial tail", "10:30", "11:30", true},
		{"touching end is free", "11:00", "12:00", false},
		{"touching start is free", "09:00", "10:00", false},
		{"disjoint", "12:00", "13:00", false},
	}

	for _, tc := range cases {
		got := iv.Overlaps(ParseHM(d, tc.start), ParseHM(d, tc.end))
		if got != tc.want {
			t.Fatalf("%s: overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveDayHoursOverridePrecedence(t *testing.T) {
	wh := &models.WorkingHours{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "18:00",
	}

	// Override fechando o dia vence o padrão semanal
	closed := ResolveDayHours(wh, &models.AvailabilityOverride{IsAvailable: false})
	if closed.Open {
		t.Fatal("override unavailable must close the day")
	}

	// Override com horário substituto troca a janela
	replaced := ResolveDayHours(wh, &models.AvailabilityOverride{
		IsAvailable: true,
		StartTime:   "14:00",
		EndTime:     "20:00",
	})
	if !replaced.Open || replaced.Start != "14:00" || replaced.End != "20:00" {
		t.Fatalf("override hours not applied: %+v", replaced)
	}

	// Override disponível sem horário mantém o padrão
	kept := ResolveDayHours(wh, &models.AvailabilityOverride{IsAvailable: true})
	if !kept.Open || kept.Start != "09:00" || kept.End != "18:00" {
		t.Fatalf("standing hours not kept: %+v", kept)
	}

	// Sem expediente cadastrado o dia é fechado
	if got := ResolveDayHours(nil, nil); got.Open {
		t.Fatal("day without working hours must be closed")
	}

	// Dia inativo também fecha
	inactive := &models.WorkingHours{Active: false, StartTime: "09:00", EndTime: "18:00"}
	if got := ResolveDayHours(inactive, nil); got.Open {
		t.Fatal("inactive weekday must be closed")
	}
}

func TestMarkBusyAnnotatesWithoutRemoving(t *testing.T) {
	d := day(t, "2026-09-07")
	hours := DayHours{Open: true, Start: "09:00", End: "11:00"}

	slots := GenerateSlots(d, hours, 30, 30) // 09:00, 09:30, 10:00, 10:30
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}

	busy := []Interval{{Start: ParseHM(d, "09:30"), End: ParseHM(d, "10:00")}}
	MarkBusy(slots, busy)

	if len(slots) != 4 {
		t.Fatalf("slots must be annotated, not removed; got %d", len(slots))
	}

	wantAvail := []bool{true, false, true, true}
	for i, w := range wantAvail {
		if slots[i].Available != w {
			t.Fatalf("slot %d (%s): available = %v, want %v",
				i, slots[i].Start.Format(HourLayout), slots[i].Available, w)
		}
	}
}

func TestBusyFromBlocksRecurringAndType(t *testing.T) {
	// 2026-09-07 é segunda; o bloco recorrente foi criado numa segunda anterior
	d := day(t, "2026-09-07")

	blocks := []models.ScheduleBlock{
		{Date: "2026-08-31", StartTime: "10:00", EndTime: "11:00", Type: models.BlockBreak, IsRecurring: true},
		{Date: "2026-09-01", StartTime: "14:00", EndTime: "15:00", Type: models.BlockBreak, IsRecurring: true}, // terça, não vale
		{Date: "2026-09-07", StartTime: "16:00", EndTime: "17:00", Type: models.BlockAppointment},             // já vira booking
		{Date: "2026-09-08", StartTime: "09:00", EndTime: "10:00", Type: models.BlockVacation},                // outra data
	}

	busy := BusyFromBlocks(d, blocks)
	if len(busy) != 1 {
		t.Fatalf("expected 1 busy interval, got %d", len(busy))
	}

	if !busy[0].Start.Equal(ParseHM(d, "10:00")) || !busy[0].End.Equal(ParseHM(d, "11:00")) {
		t.Fatalf("recurring block projected wrong: %+v", busy[0])
	}
}

func TestMarkBeforeMinimumAdvance(t *testing.T) {
	d := day(t, "2026-09-07")
	hours := DayHours{Open: true, Start: "09:00", End: "12:00"}

	slots := GenerateSlots(d, hours, 30, 30)

	MarkBefore(slots, ParseHM(d, "10:00"))

	for _, s := range slots {
		wantAvail := !s.Start.Before(ParseHM(d, "10:00"))
		if s.Available != wantAvail {
			t.Fatalf("slot %s: available = %v, want %v",
				s.Start.Format(HourLayout), s.Available, wantAvail)
		}
	}
}

func TestFitsWithinRespectsLunch(t *testing.T) {
	d := day(t, "2026-09-07")
	hours := DayHours{
		Open:       true,
		Start:      "09:00",
		End:        "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	if FitsWithin(d, hours, ParseHM(d, "12:30"), ParseHM(d, "13:30")) {
		t.Fatal("slot over lunch must not fit")
	}

	if !FitsWithin(d, hours, ParseHM(d, "13:00"), ParseHM(d, "14:00")) {
		t.Fatal("slot right after lunch must fit")
	}

	if FitsWithin(d, hours, ParseHM(d, "17:30"), ParseHM(d, "18:30")) {
		t.Fatal("slot past closing must not fit")
	}
}

func TestBusyFromBookings(t *testing.T) {
	d := day(t, "2026-09-07")

	bookings := []models.Booking{
		{StartTime: ParseHM(d, "10:00"), EndTime: ParseHM(d, "10:30")},
		{StartTime: ParseHM(d, "15:00"), EndTime: ParseHM(d, "16:00")},
	}

	busy := BusyFromBookings(bookings)
	if len(busy) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(busy))
	}

	if !busy[1].End.Equal(ParseHM(d, "16:00")) {
		t.Fatalf("interval end = %v, want 16:00", busy[1].End)
	}

	var busyTime time.Duration
	for _, iv := range busy {
		busyTime += iv.End.Sub(iv.Start)
	}
	if busyTime != 90*time.Minute {
		t.Fatalf("total busy = %v, want 90m", busyTime)
	}
}

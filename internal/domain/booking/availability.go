package booking

import (
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

// ===============================
// Availability Filter
// ===============================

type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// ResolveDayHours decide o expediente do dia: o override da data, quando
// existe, prevalece sobre o padrão semanal por inteiro. Override
// indisponível fecha o dia; override sem horário substituto mantém os
// horários do padrão.
func ResolveDayHours(wh *models.WorkingHours, ov *models.AvailabilityOverride) DayHours {
	if ov != nil {
		if !ov.IsAvailable {
			return DayHours{Open: false}
		}

		if ov.StartTime != "" && ov.EndTime != "" {
			return DayHours{
				Open:       true,
				Start:      ov.StartTime,
				End:        ov.EndTime,
				LunchStart: ov.LunchStart,
				LunchEnd:   ov.LunchEnd,
			}
		}

		if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
			return DayHours{Open: false}
		}

		return DayHours{
			Open:       true,
			Start:      wh.StartTime,
			End:        wh.EndTime,
			LunchStart: wh.LunchStart,
			LunchEnd:   wh.LunchEnd,
		}
	}

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return DayHours{Open: false}
	}

	return DayHours{
		Open:       true,
		Start:      wh.StartTime,
		End:        wh.EndTime,
		LunchStart: wh.LunchStart,
		LunchEnd:   wh.LunchEnd,
	}
}

// BusyFromBookings converte bookings ativos em intervalos ocupados.
func BusyFromBookings(bookings []models.Booking) []Interval {
	busy := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return busy
}

// BusyFromBlocks converte os blocos do dia em intervalos ocupados.
// Blocos do tipo appointment já estão refletidos na lista de bookings
// e são ignorados para não contar duas vezes. Blocos recorrentes valem
// quando o dia da semana coincide.
func BusyFromBlocks(date time.Time, blocks []models.ScheduleBlock) []Interval {
	dateKey := date.Format(DateLayout)
	weekday := date.Weekday()

	var busy []Interval
	for _, bl := range blocks {
		if bl.Type == models.BlockAppointment {
			continue
		}

		if bl.Date != dateKey {
			if !bl.IsRecurring {
				continue
			}
			blockDate, err := time.ParseInLocation(DateLayout, bl.Date, date.Location())
			if err != nil || blockDate.Weekday() != weekday {
				continue
			}
		}

		if bl.StartTime == "" || bl.EndTime == "" {
			continue
		}

		busy = append(busy, Interval{
			Start: ParseHM(date, bl.StartTime),
			End:   ParseHM(date, bl.EndTime),
		})
	}

	return busy
}

// LunchInterval devolve a pausa de almoço do expediente, se houver.
func LunchInterval(date time.Time, hours DayHours) (Interval, bool) {
	if hours.LunchStart == "" || hours.LunchEnd == "" {
		return Interval{}, false
	}
	return Interval{
		Start: ParseHM(date, hours.LunchStart),
		End:   ParseHM(date, hours.LunchEnd),
	}, true
}

// MarkBusy anota como indisponível todo slot que sobrepõe um intervalo
// ocupado. Os slots não são removidos para a UI poder exibir "ocupado".
func MarkBusy(slots []Slot, busy []Interval) {
	for i := range slots {
		if !slots[i].Available {
			continue
		}
		for _, iv := range busy {
			if iv.Overlaps(slots[i].Start, slots[i].End) {
				slots[i].Available = false
				break
			}
		}
	}
}

// MarkBefore anota como indisponíveis os slots que começam antes do
// horário mínimo permitido (hoje + antecedência mínima).
func MarkBefore(slots []Slot, minStart time.Time) {
	for i := range slots {
		if slots[i].Start.Before(minStart) {
			slots[i].Available = false
		}
	}
}

// FitsWithin verifica se [start, end) cabe no expediente do dia,
// respeitando a pausa de almoço.
func FitsWithin(date time.Time, hours DayHours, start, end time.Time) bool {
	if !hours.Open {
		return false
	}

	dayStart := ParseHM(date, hours.Start)
	dayEnd := ParseHM(date, hours.End)

	if start.Before(dayStart) || end.After(dayEnd) {
		return false
	}

	if lunch, ok := LunchInterval(date, hours); ok && lunch.Overlaps(start, end) {
		return false
	}

	return true
}

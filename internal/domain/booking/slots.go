package booking

import "time"

const DateLayout = "2006-01-02"
const HourLayout = "15:04"

const DefaultSlotIntervalMinutes = 15

// DayHours é o expediente efetivo de um dia, já resolvido entre
// o padrão semanal e um eventual override da data.
type DayHours struct {
	Open       bool
	Start      string // HH:MM
	End        string // HH:MM
	LunchStart string
	LunchEnd   string
}

// Slot é um candidato de horário; efêmero, nunca persistido.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// ParseHM projeta um horário HH:MM sobre a data, no fuso da data.
func ParseHM(date time.Time, hm string) time.Time {
	t, _ := time.Parse(HourLayout, hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// GenerateSlots produz os candidatos do dia: começam a cada
// intervalMin minutos a partir da abertura e o último termina
// exatamente no fechamento. Todos nascem disponíveis; conflitos
// são anotados depois.
func GenerateSlots(date time.Time, hours DayHours, durationMin, intervalMin int) []Slot {
	if !hours.Open || hours.Start == "" || hours.End == "" {
		return nil
	}
	if durationMin <= 0 {
		return nil
	}
	if intervalMin <= 0 {
		intervalMin = DefaultSlotIntervalMinutes
	}

	dayStart := ParseHM(date, hours.Start)
	dayEnd := ParseHM(date, hours.End)

	duration := time.Duration(durationMin) * time.Minute
	step := time.Duration(intervalMin) * time.Minute

	var slots []Slot
	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(step) {
		slots = append(slots, Slot{
			Start:     cur,
			End:       cur.Add(duration),
			Available: true,
		})
	}

	return slots
}

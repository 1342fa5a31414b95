package filters

import "fmt"

// Label arma el contador visible ("Найдено 3 события").
// Si hay tope activo muestra "Показано N из M ...".
func Label(total, displayed int) string {
	if displayed < total {
		return fmt.Sprintf("Показано %d из %d %s", displayed, total, pluralEventsGenitive(total))
	}
	return fmt.Sprintf("Найдено %d %s", total, pluralEvents(total))
}

// pluralEvents aplica la concordancia rusa: 1 событие, 2-4 события, 5+ событий.
func pluralEvents(n int) string {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return "событие"
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return "события"
	default:
		return "событий"
	}
}

// pluralEventsGenitive es la forma tras "из": из 1 события, из 3 событий.
func pluralEventsGenitive(n int) string {
	if n < 0 {
		n = -n
	}
	if n%10 == 1 && n%100 != 11 {
		return "события"
	}
	return "событий"
}

package events

import "strings"

type EventType string

const (
	EventTypeConcert    EventType = "concert"
	EventTypeTheater    EventType = "theater"
	EventTypeExhibition EventType = "exhibition"
	EventTypeSport      EventType = "sport"
	EventTypeFestival   EventType = "festival"
	EventTypeRepair     EventType = "repair"
	EventTypeAccident   EventType = "accident"
	EventTypeCityEvent  EventType = "city_event"
)

type Source string

const (
	SourceKudaGo       Source = "kudago"
	SourceYandexAfisha Source = "yandex_afisha"
	SourceManual       Source = "manual"
	SourceTelegram     Source = "telegram"
)

// fallbackLabel se usa cuando el valor viene vacío.
const fallbackLabel = "Другое"

var eventTypeLabels = map[EventType]string{
	EventTypeConcert:    "Концерт",
	EventTypeTheater:    "Театр",
	EventTypeExhibition: "Выставка",
	EventTypeSport:      "Спорт",
	EventTypeFestival:   "Мероприятие",
	EventTypeRepair:     "Ремонт",
	EventTypeAccident:   "ДТП",
	EventTypeCityEvent:  "Городское событие",
}

var sourceLabels = map[Source]string{
	SourceKudaGo:       "KudaGo",
	SourceYandexAfisha: "Яндекс Афиша",
	SourceManual:       "Вручную",
	SourceTelegram:     "Telegram",
}

// EventTypeLabel tolera tipos desconocidos: devuelve el valor crudo.
func EventTypeLabel(t EventType) string {
	if l, ok := eventTypeLabels[t]; ok {
		return l
	}
	if s := strings.TrimSpace(string(t)); s != "" {
		return s
	}
	return fallbackLabel
}

func SourceLabel(s Source) string {
	if l, ok := sourceLabels[s]; ok {
		return l
	}
	if v := strings.TrimSpace(string(s)); v != "" {
		return v
	}
	return fallbackLabel
}

func (t EventType) Known() bool {
	_, ok := eventTypeLabels[t]
	return ok
}

func (s Source) Known() bool {
	_, ok := sourceLabels[s]
	return ok
}

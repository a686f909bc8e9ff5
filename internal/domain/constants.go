package domain

// Default configuration values
const (
	DefaultServiceDurationMinutes = 30 // длительность записи, если услуга удалена
	DefaultFirstSearchDays        = 60
	DefaultOpeningTime            = "09:00"
	DefaultClosingTime            = "19:00"

	DefaultHeroTitle       = "Il Tuo Salone, Sempre Disponibile"
	DefaultHeroDescription = "Prenota il tuo appuntamento in pochi secondi. Ricevi notifiche e promemoria. Gestisci tutto dal tuo telefono."
	DefaultHeroImageURL    = "https://images.pexels.com/photos/7195799/pexels-photo-7195799.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940"
)

// DefaultTimeSlots сетка слотов по умолчанию
var DefaultTimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	"17:00", "17:30", "18:00",
}

// DefaultWorkingDays понедельник - суббота
var DefaultWorkingDays = []int{1, 2, 3, 4, 5, 6}

// Business validation constants
const (
	MaxDaysStatusRange  = 366
	MinFirstSearchDays  = 1
	MaxFirstSearchDays  = 365
	MinServiceDuration  = 5
	MaxServiceDuration  = 480 // 8 hours
	MaxClosureReasonLen = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NotificationPreferences допустимые интервалы напоминаний
var NotificationPreferences = []string{"10min", "30min", "1hour", "2hours", "1day"}

// PhonePattern формат телефона клиента: + и до 15 цифр
const PhonePattern = `^\+\d{1,15}$`

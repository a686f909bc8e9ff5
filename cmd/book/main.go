package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonBooking/internal/wizard"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type options struct {
	configPath string
	email      string
	password   string
	service    string
	staff      string
	date       string
	time       string
	first      bool
	days       int
	verbose    bool
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.configPath, "config", "config.toml", "путь к файлу конфигурации")
	flag.StringVar(&o.email, "email", "", "email клиента")
	flag.StringVar(&o.password, "password", "", "пароль (по умолчанию из SALON_PASSWORD)")
	flag.StringVar(&o.service, "service", "", "услуга: id или название")
	flag.StringVar(&o.staff, "staff", "", "мастер: id или имя")
	flag.StringVar(&o.date, "date", "", "дата YYYY-MM-DD")
	flag.StringVar(&o.time, "time", "", "время HH:MM; без него выводятся свободные слоты")
	flag.BoolVar(&o.first, "first", false, "записаться на первое свободное время")
	flag.IntVar(&o.days, "days", 0, "окно поиска первого свободного времени, дней")
	flag.BoolVar(&o.verbose, "v", false, "подробный лог")
	flag.Parse()

	if o.password == "" {
		o.password = os.Getenv("SALON_PASSWORD")
	}
	return o
}

func main() {
	opts := parseFlags()

	cfg, err := config.LoadClient(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log, err := logger.New(cfg.Logs.File, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, log); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts *options, log *logger.Logger) error {
	if opts.email == "" || opts.password == "" {
		return errors.New("email и пароль обязательны (-email, -password или SALON_PASSWORD)")
	}
	if opts.service == "" || opts.staff == "" {
		return errors.New("нужно указать -service и -staff")
	}
	if !opts.first && opts.date == "" {
		return errors.New("нужно указать -date или -first")
	}

	client := salonapi.NewClient(cfg.Client.BaseURL, time.Duration(cfg.Client.Timeout)*time.Second, log)

	session, err := client.Login(ctx, opts.email, opts.password)
	if err != nil {
		return fmt.Errorf("вход не выполнен: %w", err)
	}
	if user := session.User(); user != nil && !user.IsApproved && !user.IsAdmin {
		fmt.Println("Аккаунт ещё не подтверждён администратором: запись будет отклонена")
	}

	w := wizard.New(client, session, log).
		WithContext(ctx).
		WithDayStatusMonths(cfg.Client.DayStatusMonths)

	if err := w.Load(ctx); err != nil {
		return err
	}

	// Шаг 1: услуга
	state := w.State()
	service, ok := findService(state.Services, opts.service)
	if !ok {
		return fmt.Errorf("услуга %q не найдена; доступны: %s", opts.service, serviceNames(state.Services))
	}
	w.SelectService(service)
	w.Advance()

	// Шаг 2: мастер
	staff, ok := findStaff(state.Staff, opts.staff)
	if !ok {
		return fmt.Errorf("мастер %q не найден; доступны: %s", opts.staff, staffNames(state.Staff))
	}
	w.SelectStaff(staff)
	w.Advance()

	// Шаг 3: дата и время
	if opts.first {
		days := opts.days
		if days <= 0 {
			days = cfg.Client.FirstSearchDays
		}
		if err := w.FindFirstAvailable(ctx, days); err != nil {
			return err
		}
	} else {
		date, err := types.ParseDate(opts.date)
		if err != nil {
			return fmt.Errorf("некорректная дата %q: ожидается YYYY-MM-DD", opts.date)
		}
		w.SelectDate(date)
		w.Wait()

		state = w.State()
		if state.Slots.Err != nil {
			return state.Slots.Err
		}
		if opts.time == "" {
			printSlots(state)
			return nil
		}
		if err := w.SelectTime(opts.time); err != nil {
			return err
		}
		if !w.State().HasSlot(opts.time) {
			printSlots(state)
			return fmt.Errorf("время %s на %s недоступно", opts.time, types.FormatDate(date))
		}
	}

	w.Wait()
	draft := w.State().Draft
	fmt.Printf("Запись: %s, мастер %s, %s %s\n",
		draft.Service.Name, draft.Staff.Name, types.FormatDate(draft.Date), draft.Time)

	created, err := w.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Готово: запись %s (%s) создана, статус %s\n", created.ID, created.DateTime, created.Status)
	return nil
}

func findService(list []salonapi.Service, query string) (salonapi.Service, bool) {
	for _, s := range list {
		if s.ID == query || strings.EqualFold(s.Name, query) {
			return s, true
		}
	}
	return salonapi.Service{}, false
}

func findStaff(list []salonapi.Staff, query string) (salonapi.Staff, bool) {
	for _, s := range list {
		if s.ID == query || strings.EqualFold(s.Name, query) {
			return s, true
		}
	}
	return salonapi.Staff{}, false
}

func serviceNames(list []salonapi.Service) string {
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func staffNames(list []salonapi.Staff) string {
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func printSlots(state wizard.State) {
	date := state.Draft.Date
	status := state.DayStatus(date)
	if status == "" {
		status = "unknown"
	}

	fmt.Printf("%s (%s): ", types.FormatDate(date), status)
	if len(state.Slots.Slots) == 0 {
		fmt.Println("свободных слотов нет")
		return
	}
	fmt.Println(strings.Join(state.Slots.Slots, " "))
}

// describe текст ошибки для пользователя по её классу
func describe(err error) string {
	var conflict *wizard.ConflictError
	switch {
	case errors.As(err, &conflict):
		return fmt.Sprintf("Время %s %s уже занято, выберите другое", types.FormatDate(conflict.Date), conflict.Time)
	case errors.Is(err, wizard.ErrNotApproved):
		return "Аккаунт ещё не подтверждён администратором"
	case errors.Is(err, wizard.ErrUnauthorized), errors.Is(err, salonapi.ErrUnauthorized):
		return "Требуется повторный вход: " + err.Error()
	case errors.Is(err, wizard.ErrNoSlotFound):
		return "В заданном окне нет свободного времени"
	case errors.Is(err, wizard.ErrUnavailable), errors.Is(err, salonapi.ErrTransport):
		return "Сервис временно недоступен, попробуйте позже: " + err.Error()
	default:
		return "Ошибка: " + err.Error()
	}
}

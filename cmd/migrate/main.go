// Команда migrate управляет схемой PostgreSQL-хранилища fiturae.
//
//	migrate                 применить все миграции
//	migrate up
//	migrate down            откатить одну миграцию
//	migrate steps <N>       N > 0 вверх, N < 0 вниз
//	migrate version
//	migrate force <V>       снять dirty-флаг, выставив версию V
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"fiturae/internal/config"
	"fiturae/internal/database"
)

// command: разобранная команда командной строки.
type command struct {
	name string
	arg  int
}

var errUsage = errors.New("неверные аргументы")

// parseCommand разбирает позиционные аргументы. Без аргументов выполняется up.
func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "up"}, nil
	}

	name := args[0]
	switch name {
	case "up", "down", "version":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%w: %s не принимает аргументов", errUsage, name)
		}
		return command{name: name}, nil
	case "steps", "force":
		if len(args) != 2 {
			return command{}, fmt.Errorf("%w: %s ожидает одно число", errUsage, name)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return command{}, fmt.Errorf("%w: %s: %v", errUsage, name, err)
		}
		if name == "force" && n < 0 {
			return command{}, fmt.Errorf("%w: версия не может быть отрицательной", errUsage)
		}
		return command{name: name, arg: n}, nil
	default:
		return command{}, fmt.Errorf("%w: неизвестная команда %q", errUsage, name)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Использование: %s [up | down | steps N | version | force V]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Параметры подключения берутся из DB_* переменных окружения (.env).")
	}
	flag.Parse()

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		flag.Usage()
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Fatalf("Миграции нужны только для STORAGE_DRIVER=postgres (текущий: %s)", cfg.Storage.Driver)
	}

	migrator, err := database.NewMigratorFromConfig(&cfg.Database)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}

	code := 0
	if err := run(migrator, cmd); err != nil {
		log.Printf("migrate %s: %v", cmd.name, err)
		code = 1
	}
	if err := migrator.Close(); err != nil {
		log.Printf("Ошибка закрытия мигратора: %v", err)
	}
	os.Exit(code)
}

// run выполняет команду. ErrNoChange не считается ошибкой.
func run(migrator *database.Migrator, cmd command) error {
	log.Printf("migrate: command=%s arg=%d", cmd.name, cmd.arg)

	var err error
	switch cmd.name {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if cmd.arg == 0 {
			return nil
		}
		err = migrator.Steps(cmd.arg)
	case "force":
		err = migrator.Force(cmd.arg)
	case "version":
		return printVersion(migrator)
	}

	if errors.Is(err, database.ErrNoChange) {
		log.Println("Схема уже актуальна, изменений нет")
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("migrate %s: готово", cmd.name)
	return nil
}

func printVersion(migrator *database.Migrator) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	switch {
	case version == 0:
		log.Println("Миграции ещё не применялись")
	case dirty:
		return fmt.Errorf("версия %d в состоянии dirty, выполните force", version)
	default:
		log.Printf("Текущая версия: %d", version)
	}
	return nil
}

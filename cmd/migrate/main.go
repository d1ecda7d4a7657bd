package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"estoque/internal/pkg/database"
	"estoque/internal/pkg/logger"
)

// gooseLogger adapta o logger do serviço à interface de log do goose.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(fmt.Sprintf(format, v...), nil)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal("goose", fmt.Errorf(format, v...))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	appLog := logger.NewDevelopmentLogger(getEnv("LOG_LEVEL", "info"))

	var migrationsDir, databaseURL string
	flag.StringVar(&migrationsDir, "dir", "./sql", "directory with migration files")
	flag.StringVar(&databaseURL, "db", os.Getenv("DATABASE_URL"), "postgres connection string (default $DATABASE_URL)")
	flag.Parse()

	if databaseURL == "" {
		appLog.Fatal("goose: conexão não informada", errors.New("defina DATABASE_URL ou -db"))
	}

	db, err := database.NewPostgresDB(databaseURL)
	if err != nil {
		appLog.Fatal("goose: failed to connect to DB", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("goose: failed to close DB", err)
		}
	}()

	goose.SetLogger(gooseLogger{log: appLog})
	if err := goose.SetDialect("postgres"); err != nil {
		appLog.Fatal("goose: dialect", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		appLog.Fatal(fmt.Sprintf("goose %v", command), err)
	}

	appLog.Info(fmt.Sprintf("goose %s success", command), nil)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vnkhanh/eval-survey-server/logger"
	"github.com/vnkhanh/eval-survey-server/models"
)

var DB *gorm.DB

type Settings struct {
	Port        string
	Debug       bool
	LogLevel    logger.Level
	DBDriver    string // postgres | sqlite
	SQLitePath  string
	CORSOrigins []string

	// giới hạn POST /api/surveys theo IP
	CreatePerMinute int
	CreateBurst     int
}

// Load đọc .env (nếu có) rồi lấy cấu hình từ biến môi trường.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file loaded: %v", err)
	}

	s := Settings{
		Port:            getenv("PORT", "8080"),
		Debug:           getenv("DEBUG", "false") == "true",
		LogLevel:        logger.ParseLevel(getenv("LOG_LEVEL", "info")),
		DBDriver:        strings.ToLower(getenv("DB_DRIVER", "postgres")),
		SQLitePath:      getenv("SQLITE_PATH", "surveys.db"),
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		CreatePerMinute: atoi(getenv("SURVEY_CREATE_PER_MIN", "10"), 10),
		CreateBurst:     atoi(getenv("SURVEY_CREATE_BURST", "5"), 5),
	}
	if os.Getenv("JWT_SECRET") == "" {
		logger.Warnf("JWT_SECRET is not set; write routes will reject every bearer token")
	}
	return s
}

// ConnectDB khởi tạo kết nối DB theo DB_DRIVER và migrate bảng
func ConnectDB(s Settings) {
	var dialector gorm.Dialector
	switch s.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(s.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		dialector = postgres.Open(dsn)
	default:
		logger.Fatalf("unknown DB_DRIVER %q", s.DBDriver)
	}

	level := gormlogger.Warn
	if s.Debug {
		level = gormlogger.Info
	}
	db, err := Open(dialector, level)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}

	DB = db
	logger.Infof("Connected to %s & migrated successfully", s.DBDriver)
}

// Open mở kết nối và AutoMigrate; test dùng trực tiếp với sqlite in-memory.
func Open(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger.Logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate bảng
	if err := db.AutoMigrate(
		&models.Survey{},
		&models.Question{},
		&models.Detail{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

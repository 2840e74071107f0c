package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/config"
	appHTTP "github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/database"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/jwt"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/qrtoken"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/ratelimit"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/repository/postgresql"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/service/access"
	attendanceService "github.com/crazybass81/DOT-V0.1-sub002/internal/service/attendance"
	businessService "github.com/crazybass81/DOT-V0.1-sub002/internal/service/business"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	businessRepo := postgresql.NewBusinessRepository(db)
	recordLocker := postgresql.NewRecordLocker(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	tokenCodec := qrtoken.New(cfg.Attendance.QRTokenSecret, cfg.Attendance.QRTokenTTL)
	statusLimiter := ratelimit.New(cfg.RateLimit.StatusRequestsPerMinute, time.Minute)
	gate := access.NewGate(businessRepo)

	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		businessRepo,
		recordLocker,
		tokenCodec,
		gate,
		cfg.Attendance,
	)
	businessSvc := businessService.NewService(
		businessRepo,
		attendanceRepo,
		tokenCodec,
		gate,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	businessHandler := appHTTP.NewBusinessHandler(businessSvc)

	router := appHTTP.NewRouter(
		JWTService,
		statusLimiter,
		attendanceHandler,
		businessHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	effget "react-golang/http-server/efficiency/get"
	effhistory "react-golang/http-server/efficiency/history"
	effsave "react-golang/http-server/efficiency/save"
	effupdate "react-golang/http-server/efficiency/update"
	importexcel "react-golang/http-server/import-excel"
	orderdelete "react-golang/http-server/orders/delete"
	orderget "react-golang/http-server/orders/get"
	ordersave "react-golang/http-server/orders/save"
	orderupdate "react-golang/http-server/orders/update"
	planget "react-golang/http-server/planning/get"
	plansave "react-golang/http-server/planning/save"
	planupdate "react-golang/http-server/planning/update"
	taskend "react-golang/http-server/tasks/end"
	taskstart "react-golang/http-server/tasks/start"
	taskupdate "react-golang/http-server/tasks/update"
	"react-golang/http-server/users/login"
	"react-golang/http-server/users/register"
	wdget "react-golang/http-server/workdata/get"
	"react-golang/internal/config"
	authmw "react-golang/internal/middleware/auth"
	"react-golang/internal/service/auth"
	"react-golang/internal/service/efficiency"
	"react-golang/internal/service/importer"
	"react-golang/internal/service/planning"
	"react-golang/internal/service/taskflow"
	"react-golang/internal/storage/mongodb"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *mongodb.Storage,
	tasks *taskflow.Service,
	workdata *taskflow.Workdata,
	summaries *efficiency.Service,
	plans *planning.Service,
	workbooks *importer.Service,
	users *auth.Service,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Вход и регистрация — без токена
	router.Post("/api/login", login.Login(log, users))
	router.Post("/api/register", register.Register(log, users))

	router.Group(func(r chi.Router) {
		r.Use(authmw.JWT(users))

		r.Post("/api/logout", login.Logout(log, users))

		// Заказы
		r.Get("/api/getData", orderget.GetWorkOrders(log, storage))
		r.Get("/api/osasto/{code}", orderget.GetWorkOrdersByOsasto(log, storage))
		r.Post("/api/update_osasto", orderupdate.UpdateRouting(log, storage))
		r.Post("/api/add_row", ordersave.DuplicateWorkOrder(log, storage))
		r.Post("/api/delete_row", orderdelete.DeleteWorkOrder(log, storage))
		r.Post("/api/empty_data", orderdelete.EmptyWorkOrder(log, storage))

		// Журнал задач
		r.Post("/api/start_task", taskstart.StartTask(log, tasks))
		r.Post("/api/endTask", taskend.EndTask(log, tasks))
		r.Post("/api/modify_task", taskupdate.ModifyTask(log, tasks))
		r.Post("/api/update_total_made_section", taskupdate.UpdateSectionTotal(log, tasks))
		r.Post("/api/updatePress", taskupdate.UpdatePressTotal(log, tasks))

		// Отчётные выборки
		r.Post("/api/fetch_user_works", wdget.FetchUserWorks(log, workdata))
		r.Post("/api/fetch_history", wdget.FetchHistory(log, workdata))
		r.Post("/api/work_hours", wdget.WorkHours(log, workdata))

		// Эффективность
		r.Get("/api/efficiency", effget.GetEfficiency(log, summaries))
		r.Post("/api/efficiency", effsave.BuildEfficiency(log, summaries))
		r.Post("/api/efficiencyStatus", effupdate.UpdateItemStatus(log, summaries))
		r.Post("/api/efficiencySave", effsave.SaveEfficiency(log, summaries))
		r.Post("/api/efficiencyHistory", effhistory.FetchHistory(log, summaries))

		// Планирование
		r.Post("/api/planning", planget.GetPlanning(log, plans))
		r.Post("/api/add-weeklydata", plansave.AddWeeklyData(log, plans))
		r.Post("/api/planning/updateOmpelu", planupdate.UpdateOmpelu(log, plans))

		// Импорт выгрузки ERP
		r.Post("/api/import_excel", importexcel.ImportExcel(log, workbooks))
	})

	return router
}

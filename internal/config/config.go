package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Mongo      Mongo   `yaml:"mongo"`
	Redis      Redis   `yaml:"redis"`
	Auth       Auth    `yaml:"auth"`
	Factory    Factory `yaml:"factory"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env-default:"localhost:4001"`
	Timeout        time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"http://localhost:5173,http://localhost:8081"`
}

type Mongo struct {
	URI                  string `yaml:"uri" env:"MONGO_URI" env-required:"true"`
	Database             string `yaml:"database" env:"DATABASE_NAME" env-required:"true"`
	OrdersCollection     string `yaml:"orders_collection" env:"COLLECTION_NAME" env-default:"Kokkola"`
	KooditCollection     string `yaml:"koodit_collection" env-default:"Koodit"`
	EfficiencyCollection string `yaml:"efficiency_collection" env-default:"KokkolaEfficiency"`
	PlanningCollection   string `yaml:"planning_collection" env-default:"KokkolaPlanning"`
	UsersCollection      string `yaml:"users_collection" env-default:"Users"`
}

type Redis struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env-default:"0"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Factory описывает цеховые константы, которые раньше были зашиты в коде:
// список секций, "терминальные" секции (их готовность двигает статус заказа),
// отделы для расчёта эффективности и момент перехода на следующую неделю.
type Factory struct {
	Timezone          string   `yaml:"timezone" env-default:"Europe/Helsinki"`
	Sections          []string `yaml:"sections" env-default:"Leikkaus,Esivalmistelu,Hygienia,Erikoispuoli,Remmit,Pakkaus,Painatus"`
	TerminalSections  []string `yaml:"terminal_sections" env-default:"Hygienia,Pakkaus"`
	EfficiencyOsastot []int    `yaml:"efficiency_osastot" env-default:"300,400"`
	SummaryPrefix     string   `yaml:"summary_prefix" env-default:"KokkolaEfficiency"`
	CutoffWeekday     int      `yaml:"cutoff_weekday" env-default:"5"`
	CutoffTime        string   `yaml:"cutoff_time" env-default:"17:30"`
}

func MustConfig() *Config {
	var cfg Config

	path := "./config/local.yaml"

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}

package config

// AppConfig глобальная конфигурация приложения
var AppConfig *Config

// Config основной конфиг
type Config struct {
	Environment string
	HTTPAddr    string
	Bot         BotConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Google      GoogleConfig
	OpenAI      OpenAIConfig
}

type BotConfig struct {
	Token    string
	Debug    bool
	AdminIDs []int64 // ID администраторов (могут записывать групповое ДЗ)
	// Внутренний вебхук, на который OAuth-сервер сообщает об успешном входе
	CallbackURL string
}

// MongoConfig подключение к хранилищу учебников
type MongoConfig struct {
	URI      string
	Database string
}

type GoogleConfig struct {
	ClientID           string
	ClientSecret       string
	RedirectURI        string
	TokenDir           string // по одному json-токену на пользователя
	ServiceAccountFile string // ключ сервисного аккаунта для записи в таблицу
	SpreadsheetID      string // таблица для логов использования AI
	TextbooksFolder    string // общая папка на Drive для учебников
}

type OpenAIConfig struct {
	APIKey string
}

// IsAdmin проверяет, входит ли telegram id в список администраторов
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.Bot.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

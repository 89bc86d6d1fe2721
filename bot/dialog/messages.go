package dialog

// User-facing texts. The transport sends them as plain messages.
const (
	msgAskName       = "Привет! Введите ваше имя:"
	msgAskAge        = "Введите ваш возраст:"
	msgAgeNotNumber  = "Пожалуйста, введите возраст числом."
	msgAskGrade      = "Введите ваш класс:"
	msgSaveFailed    = "⚠️ Не удалось сохранить данные. Попробуйте ещё раз."
	msgListEmpty     = "📭 Список учеников пуст."
	msgListHeader    = "📋 Список учеников:\n"
	msgDeleteUsage   = "⚠️ Использование: /delete [ID]"
	msgAskBreed      = "🐱 Введите название породы кошки:"
	msgBreedNotFound = "❌ Порода не найдена. Попробуйте другое название."
	msgLookupFailed  = "⚠️ Сервис сейчас недоступен. Попробуйте позже."
	msgNoSessionHint = "Я вас не понял. Наберите /start, чтобы заполнить анкету, или /breed, чтобы узнать о породе кошек."
	msgUnknownCmd    = "⚠️ Неизвестная команда."
)

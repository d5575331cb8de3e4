package bot

// Button labels and user-facing texts. The bot speaks Ukrainian.
const (
	btnEvents     = "🎫 Доступні івенти"
	btnHelp       = "ℹ️ Допомога"
	btnPayJar     = "🏦 Оплата на банку"
	btnPayInvoice = "💳 Оплата карткою"
	btnPaid       = "✅ Я оплатив(ла)"
	btnCancel     = "❌ Скасувати"

	msgWelcome        = "Вітаємо! Оберіть опцію з меню:"
	msgHelp           = "Це бот для придбання квитків на музичні івенти. Оберіть \"🎫 Доступні івенти\", щоб переглянути список."
	msgChooseEvent    = "Оберіть івент:"
	msgEventNotFound  = "❗️ Обраний івент не знайдено. Будь ласка, оберіть зі списку."
	msgChooseQuantity = "Виберіть кількість квитків на *%s*:"
	msgQuantityRange  = "❗️ Будь ласка, оберіть кількість квитків від 1 до 5."
	msgChoosePayment  = "Оберіть спосіб оплати:"
	msgNoJars         = "😔 Наразі всі реквізити для оплати зайняті. Спробуйте, будь ласка, пізніше."
	msgJarPayment     = "Перекажіть *%d грн* на банку за посиланням:\n%s\n\nПісля переказу натисніть «" + btnPaid + "»."
	msgNotPaidYet     = "⏳ Оплату поки не знайдено. Якщо ви щойно переказали кошти, зачекайте хвилину та натисніть «" + btnPaid + "» ще раз."
	msgCheckFailed    = "❗️ Не вдалося перевірити оплату. Спробуйте ще раз за хвилину."
	msgCancelled      = "Замовлення скасовано. Повертаємось до головного меню."
	msgThanks         = "✅ Дякуємо за покупку! Всі ваші квитки були надіслані."
	msgTicketCaption  = "✅ Ваш квиток №%d на *%s*."
	msgInvoiceLink    = "Для оплати %d квитків на *%s* перейдіть за посиланням:\n%s"
	msgInvoiceFailed  = "❗️ Сталася помилка при створенні рахунку. Спробуйте пізніше."
	msgUnknown        = "Невідома команда. Будь ласка, оберіть опцію з меню."
	msgError          = "❗️ Сталася помилка. Спробуйте пізніше."
)

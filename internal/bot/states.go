package bot

import "homework-bot/internal/dialog"

// Состояния диалогов. Каждый мастер идёт по своей цепочке, переходы
// описаны в registerFlows.
const (
	// Регистрация
	StateRegisterName  dialog.State = "register_name"
	StateRegisterEmail dialog.State = "register_email"

	// Личное ДЗ: текст
	StateHWSubject dialog.State = "hw_subject"
	StateHWDate    dialog.State = "hw_date"
	StateHWText    dialog.State = "hw_text"

	// Личное ДЗ: файл
	StateFileSubject dialog.State = "file_subject"
	StateFileDate    dialog.State = "file_date"
	StateFileUpload  dialog.State = "file_upload"

	// Редактирование личного ДЗ
	StateEditHWSubject dialog.State = "edit_hw_subject"
	StateEditHWMenu    dialog.State = "edit_hw_menu"
	StateEditHWText    dialog.State = "edit_hw_text"

	// Групповое ДЗ: текст
	StateGroupHWSubject dialog.State = "group_hw_subject"
	StateGroupHWDate    dialog.State = "group_hw_date"
	StateGroupHWText    dialog.State = "group_hw_text"

	// Групповое ДЗ: файл
	StateGroupFileSubject dialog.State = "group_file_subject"
	StateGroupFileDate    dialog.State = "group_file_date"
	StateGroupFileUpload  dialog.State = "group_file_upload"

	// Редактирование группового ДЗ
	StateEditGroupHWSubject dialog.State = "edit_group_hw_subject"
	StateEditGroupHWMenu    dialog.State = "edit_group_hw_menu"
	StateEditGroupHWText    dialog.State = "edit_group_hw_text"

	// Учебники
	StateTextbookSubject dialog.State = "textbook_subject"
	StateTextbookUpload  dialog.State = "textbook_upload"

	// Конспект страниц учебника
	StateSummarySubject dialog.State = "summary_subject"
	StateSummaryFile    dialog.State = "summary_file"
	StateSummaryPages   dialog.State = "summary_pages"
	StateSummaryConfirm dialog.State = "summary_confirm"

	// Удаление расписания
	StateDeleteScheduleConfirm dialog.State = "delete_schedule_confirm"
)

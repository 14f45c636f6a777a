package events

// TableChangedName - имя события в шине.
const TableChangedName = "table.changed"

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Источник события: триггер базы или сервис после собственной записи.
const (
	SourceDatabase = "db"
	SourceService  = "service"
)

// TableChanged - строка таблицы создана, изменена или удалена.
type TableChanged struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     uint64 `json:"id"`
	Source string `json:"-"`
}

// Name - реализуем интерфейс eventbus.Event
func (e TableChanged) Name() string {
	return TableChangedName
}

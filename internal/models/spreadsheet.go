package models

// Cell — значение таблицы по координатам (Row, Col).
// Отсутствующий в JSON ключ value разбирается как пустое значение.
type Cell struct {
	Row   int       `json:"row"`
	Col   int       `json:"col"`
	Value CellValue `json:"value"`
}

// SpreadsheetColumn описывает колонку таблицы.
type SpreadsheetColumn struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpreadsheetRow описывает строку календарной таблицы.
type SpreadsheetRow struct {
	Month string `json:"month"`
	Day   string `json:"day"`
	Date  string `json:"date"`
}

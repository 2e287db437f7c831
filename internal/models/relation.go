package models

import "time"

// RelationTable — логическая таблица Relation Store.
type RelationTable string

const (
	// RelationBlocking: partition — кто блокирует (получатель уведомлений), row — кого.
	RelationBlocking RelationTable = "blocking"
	// RelationSaving: partition — участник, row — сохранённый пост.
	RelationSaving RelationTable = "saving"
	// RelationHistory: partition — зритель, row — просмотренный пост.
	RelationHistory RelationTable = "history"
)

// UpsertMode — режим записи сущности.
type UpsertMode int

const (
	// UpsertReplace заменяет Props целиком.
	UpsertReplace UpsertMode = iota
	// UpsertMerge объединяет Props с сохранёнными.
	UpsertMerge
)

// Relation — факт отношения (partition key, row key) с мягким удалением через IsActive.
type Relation struct {
	Table        RelationTable
	PartitionKey string
	RowKey       string
	IsActive     bool
	Props        map[string]any
	UpdatedAt    time.Time
}

// RelationFilter — выборка из Relation Store. Пустые поля не фильтруют.
type RelationFilter struct {
	Table        RelationTable
	PartitionKey string
	RowKey       string
	OnlyActive   bool
}

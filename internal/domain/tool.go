package domain

// ToolDescriptor - описание инструмента для клиента: имя, описание и JSON Schema аргументов.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolResult - результат вызова инструмента.
// Payload заполнен при успехе (в том числе для {"error": "Unknown tool: ..."}),
// ключи конверта идут в порядке добавления.
// Text - то, что уходит клиенту: JSON с отступами либо "Error: ...".
type ToolResult struct {
	Payload Row
	Text    string
	IsError bool
}

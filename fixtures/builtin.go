package fixtures

// Builtin dataset names
const (
	Users         = "users"
	Employees     = "employees"
	UsersColumnar = "users_columnar"
)

func init() {
	register(&Dataset{
		Name:       Users,
		RecordName: "User",
		Sheet:      "Users",
		Columns: []Column{
			{Name: "name", Type: String},
			{Name: "age", Type: Int32},
			{Name: "email", Type: String},
		},
		Rows: [][]any{
			{"John Doe", 25, "john@example.com"},
			{"Jane Smith", 30, "jane@example.com"},
		},
	})

	register(&Dataset{
		Name:       Employees,
		RecordName: "Employee",
		Sheet:      "TestData",
		Columns: []Column{
			{Name: "name", Type: String},
			{Name: "age", Type: Int64},
			{Name: "department", Type: String},
			{Name: "salary", Type: Int64},
		},
		Rows: [][]any{
			{"Alice", 28, "HR", 65000},
			{"Charlie", 32, "Finance", 75000},
			{"Diana", 29, "Engineering", 85000},
			{"Bob", 35, "Marketing", 70000},
		},
	})

	register(&Dataset{
		Name:       UsersColumnar,
		RecordName: "User",
		Sheet:      "Users",
		Columns: []Column{
			{Name: "name", Type: String},
			{Name: "age", Type: Int64},
			{Name: "email", Type: String},
		},
		Rows: [][]any{
			{"John Doe", 25, "john@example.com"},
			{"Jane Smith", 30, "jane@example.com"},
			{"Bob Johnson", 35, "bob@example.com"},
		},
	})
}

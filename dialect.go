package norm

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Dialect describes a backend. Engines are built from a dialect and a
// set of connection parameters.
type Dialect struct {
	Name       string
	DriverName string
	// Required lists the params that must be non-empty.
	Required []string
	// Wrap quotes identifiers in SELECT and FROM lists. nil means no quoting.
	Wrap     func(string) string
	Fields   FieldTypes
	Commands func() map[Clause]Rule
	DSN      func(Params) (string, error)
	// Validate overrides the Required check when set. It returns the missing keys.
	Validate func(Params) []string
}

// Engine validates params and returns an engine for this dialect.
func (d *Dialect) Engine(params Params) (*Engine, error) {
	var missing []string
	if d.Validate != nil {
		missing = d.Validate(params)
	} else {
		missing = missingParams(params, d.Required...)
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Engine: d.Name, Missing: missing}
	}
	commands := defaultCommands
	if d.Commands != nil {
		commands = d.Commands
	}
	own := make(Params, len(params))
	for k, v := range params {
		own[k] = v
	}
	return &Engine{dialect: d, params: own, commands: commands()}, nil
}

func missingParams(params Params, keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if params[k] == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

func defaultCommands() map[Clause]Rule {
	return map[Clause]Rule{
		ClauseSelect:      Computed(listing("SELECT")),
		ClauseFrom:        Computed(listing("FROM")),
		ClauseInsert:      Template("INSERT INTO {0} ({1})"),
		ClauseValues:      Template("VALUES ({0})"),
		ClauseUpdate:      Template("UPDATE {0}"),
		ClauseSet:         Template("SET {1}"),
		ClauseDelete:      Template("DELETE FROM {0}"),
		ClauseWhere:       Template("WHERE {0}"),
		ClauseOrderBy:     Template("ORDER BY {0}"),
		ClauseJoin:        Template("INNER JOIN {0}"),
		ClauseOn:          Template("ON {0}={1}"),
		ClauseGroupBy:     Template("GROUP BY {0}"),
		ClauseHaving:      Template("HAVING {0}"),
		ClauseCreateTable: Template("CREATE TABLE IF NOT EXISTS {0} ({1})"),
		ClauseDropTable:   Template("DROP TABLE IF EXISTS {0}"),
	}
}

func backtick(id string) string {
	return "`" + id + "`"
}

func hostPort(params Params, host string) string {
	if port := params["port"]; port != "" {
		return net.JoinHostPort(host, port)
	}
	return host
}

func sqliteDSN(p Params) (string, error) {
	return p["db"], nil
}

func mysqlDSN(p Params) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = p["user"]
	cfg.Passwd = p["passwd"]
	cfg.Net = "tcp"
	cfg.Addr = hostPort(p, p["host"])
	cfg.DBName = p["db"]
	return cfg.FormatDSN(), nil
}

var postgresKeys = []string{"host", "port", "user", "password", "dbname", "sslmode"}

func postgresDSN(p Params) (string, error) {
	if u := p["url"]; u != "" {
		dsn, err := pq.ParseURL(u)
		if err != nil {
			return "", fmt.Errorf("norm: postgres url: %w", err)
		}
		return dsn, nil
	}
	var parts []string
	for _, k := range postgresKeys {
		if v := p[k]; v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	return strings.Join(parts, " "), nil
}

func postgresValidate(p Params) []string {
	if p["url"] != "" {
		return nil
	}
	return missingParams(p, "user", "host", "dbname")
}

func mssqlDSN(p Params) (string, error) {
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(p["user"], p["password"]),
		Host:     hostPort(p, p["server"]),
		RawQuery: url.Values{"database": {p["database"]}}.Encode(),
	}
	return u.String(), nil
}

func db2DSN(p Params) (string, error) {
	dsn := fmt.Sprintf("HOSTNAME=%s;DATABASE=%s;UID=%s;PWD=%s", p["hostname"], p["database"], p["uid"], p["pwd"])
	if port := p["port"]; port != "" {
		dsn += ";PORT=" + port
	}
	return dsn, nil
}

func firebirdDSN(p Params) (string, error) {
	return fmt.Sprintf("%s:%s@%s/%s", p["user"], p["password"], hostPort(p, p["host"]), p["database"]), nil
}

var Dialects = &struct {
	SQLite     *Dialect
	MySQL      *Dialect
	PostgreSQL *Dialect
	MSSQL      *Dialect
	DB2        *Dialect
	Firebird   *Dialect
}{
	SQLite: &Dialect{
		Name:       "sqlite",
		DriverName: "sqlite3",
		Required:   []string{"db"},
		Fields:     sqliteFields,
		DSN:        sqliteDSN,
	},
	MySQL: &Dialect{
		Name:       "mysql",
		DriverName: "mysql",
		Required:   []string{"user", "passwd", "host", "db"},
		Wrap:       backtick,
		Fields:     mysqlFields,
		DSN:        mysqlDSN,
	},
	PostgreSQL: &Dialect{
		Name:       "postgres",
		DriverName: "postgres",
		Required:   []string{"user", "host", "dbname"},
		Fields:     postgresFields,
		DSN:        postgresDSN,
		Validate:   postgresValidate,
	},
	MSSQL: &Dialect{
		Name:       "mssql",
		DriverName: "sqlserver",
		Required:   []string{"user", "password", "server", "database"},
		Fields:     mssqlFields,
		DSN:        mssqlDSN,
	},
	DB2: &Dialect{
		Name:       "db2",
		DriverName: "go_ibm_db",
		Required:   []string{"hostname", "database", "uid", "pwd"},
		Fields:     db2Fields,
		DSN:        db2DSN,
	},
	Firebird: &Dialect{
		Name:       "firebird",
		DriverName: "firebirdsql",
		Required:   []string{"user", "password", "host", "database"},
		Fields:     firebirdFields,
		DSN:        firebirdDSN,
	},
}

func getDialect(name string) (*Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return Dialects.SQLite, nil
	case "mysql":
		return Dialects.MySQL, nil
	case "postgres", "postgresql", "pgsql":
		return Dialects.PostgreSQL, nil
	case "mssql", "sqlserver":
		return Dialects.MSSQL, nil
	case "db2":
		return Dialects.DB2, nil
	case "firebird", "firebirdsql":
		return Dialects.Firebird, nil
	default:
		return nil, &ConfigurationError{Engine: name, Reason: "no dialect matched"}
	}
}

// NewEngine builds the engine for the named backend.
func NewEngine(name string, params Params) (*Engine, error) {
	d, err := getDialect(name)
	if err != nil {
		return nil, err
	}
	return d.Engine(params)
}

package norm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	t.Run("select supplies the table", func(t *testing.T) {
		sql, err := New(sqliteEngine(t)).Table("mytable").Select().SQL()
		assert.NoError(t, err)
		assert.Equal(t, "SELECT * FROM mytable", sql)
	})

	t.Run("select with mysql wrapping", func(t *testing.T) {
		sql, err := New(mysqlEngine(t)).Table("users").Select("name", "org").Where("id = 1").SQL()
		assert.NoError(t, err)
		assert.Equal(t, "SELECT `name`, `org` FROM `users` WHERE id = 1", sql)
	})

	t.Run("insert", func(t *testing.T) {
		sql, err := New(sqliteEngine(t)).Table("users").Insert("name").Values("'ali'").SQL()
		assert.NoError(t, err)
		assert.Equal(t, "INSERT INTO users (name) VALUES ('ali')", sql)
	})

	t.Run("update", func(t *testing.T) {
		sql, err := New(sqliteEngine(t)).Table("users").Update().Set("name='ali'").Where("id = 2").SQL()
		assert.NoError(t, err)
		assert.Equal(t, "UPDATE users SET name='ali' WHERE id = 2", sql)
	})

	t.Run("delete", func(t *testing.T) {
		sql, err := New(sqliteEngine(t)).Table("users").Delete().Where("id = 2").SQL()
		assert.NoError(t, err)
		assert.Equal(t, "DELETE FROM users WHERE id = 2", sql)
	})

	t.Run("join group order", func(t *testing.T) {
		sql, err := New(sqliteEngine(t)).Table("users").
			Select("orgs.name").
			Join("orgs").On("users.org_id", "orgs.id").
			GroupBy("orgs.name").
			Having("COUNT(*) > 2").
			OrderBy("orgs.name").
			SQL()
		assert.NoError(t, err)
		assert.Equal(t, "SELECT orgs.name FROM users INNER JOIN orgs ON users.org_id=orgs.id GROUP BY orgs.name HAVING COUNT(*) > 2 ORDER BY orgs.name", sql)
	})

	t.Run("create and drop", func(t *testing.T) {
		table := New(sqliteEngine(t)).Table("tags")
		sql, err := table.Create("pk::id", "string::label::32").SQL()
		assert.NoError(t, err)
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS tags (id INTEGER PRIMARY KEY AUTOINCREMENT, label VARCHAR(32))", sql)

		sql, err = table.Drop().SQL()
		assert.NoError(t, err)
		assert.Equal(t, "DROP TABLE IF EXISTS tags", sql)
	})

	t.Run("shares the database buffer", func(t *testing.T) {
		db := New(sqliteEngine(t))
		table := db.Table("users")
		assert.Equal(t, "users", table.Name())
		assert.Same(t, db, table.Database())
		table.Delete()
		assert.Equal(t, 1, db.parts.Len())
		sql, err := db.Where("id = 3").SQL()
		assert.NoError(t, err)
		assert.Equal(t, "DELETE FROM users WHERE id = 3", sql)
	})

	t.Run("errors surface on sql", func(t *testing.T) {
		_, err := New(sqliteEngine(t)).Table("users").Create("blob::data").SQL()
		assert.ErrorIs(t, err, ErrUnknownFieldType)
	})

	t.Run("with returns the callback error", func(t *testing.T) {
		table := New(sqliteEngine(t)).Table("users")
		boom := errors.New("boom")
		err := table.With(func(inner *Table) error {
			assert.Same(t, table, inner)
			return boom
		})
		assert.Same(t, boom, err)
	})
}

package prisma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbschema/dbschema/internal/prisma"
)

const sample = `
datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

// a comment
model User {
  id    Int     @id @default(autoincrement())
  email String  @unique
  role  Role    @default(USER)
  posts Post[]
  bio   String?

  @@map("users")
}

model Post {
  id       Int    @id @default(autoincrement())
  title    String
  author   User   @relation(fields: [authorId], references: [id])
  authorId Int
}

enum Role {
  USER
  ADMIN

  @@map("roles")
}
`

func TestParseModelsAndEnums(t *testing.T) {
	schema, err := prisma.Parse(sample)
	require.NoError(t, err)

	require.Len(t, schema.Models, 2)
	require.Len(t, schema.Enums, 1)

	user := schema.Models[0]
	assert.Equal(t, "User", user.Name)
	require.Len(t, user.Fields, 5)
	assert.Equal(t, "id", user.Fields[0].Name)
	assert.Equal(t, "Int", user.Fields[0].Type)
	assert.Contains(t, user.Fields[0].Attributes, "@id")

	posts := user.Fields[3]
	assert.Equal(t, "Post", posts.Type)
	assert.True(t, posts.List)

	bio := user.Fields[4]
	assert.True(t, bio.Optional)

	assert.Equal(t, []string{`@@map("users")`}, user.Attributes)

	author := schema.Models[1].Fields[2]
	assert.Equal(t, "author", author.Name)
	require.Len(t, author.Attributes, 1)
	assert.Contains(t, author.Attributes[0], "@relation(fields: [authorId], references: [id])")

	role := schema.Enums[0]
	assert.Equal(t, "Role", role.Name)
	assert.Equal(t, []string{"USER", "ADMIN"}, role.Values)
}

func TestToCtyValue(t *testing.T) {
	schema, err := prisma.Parse(sample)
	require.NoError(t, err)

	val := schema.ToCtyValue()
	models := val.AsValueMap()["models"].AsValueMap()
	require.Contains(t, models, "User")

	userFields := models["User"].AsValueMap()["fields"].AsValueSlice()
	assert.Len(t, userFields, 5)
}

package controllers_test

import (
	"testing"

	"learngenie/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveProfile(t *testing.T, env *testEnv, user testUser, interests ...string) {
	t.Helper()
	body := map[string]interface{}{
		"twelfthStream":   "Science",
		"degree":          "",
		"postGrad":        "",
		"areasOfInterest": interests,
	}
	resp, _ := env.do(t, "POST", "/api/user_profile/save", body, user.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRecommendationsRankLocalAndCoursera(t *testing.T) {
	env := newTestEnv(t, newCourseraClient(t, false))
	manager := env.seedUser(t, "Manager", "manager@example.com", models.RoleManager)
	learner := env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)
	env.seedCourse(t, manager.ID, "Python for Data Science", "Data Science", "Free")
	env.seedCourse(t, manager.ID, "Oil Painting", "Arts", "Free")
	saveProfile(t, env, learner, "Data Science, Python", "Machine Learning")

	resp, result := env.do(t, "GET", "/api/recommendations/"+learner.ID.String(), nil, learner.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	recs := result["recommendations"].([]interface{})
	require.NotEmpty(t, recs)
	// keywords: science, data science, python, machine learning
	top := recs[0].(map[string]interface{})
	assert.Equal(t, "Coursera", top["source"])
	assert.Equal(t, float64(4), top["matchCount"])
	assert.Equal(t, "Machine Learning", top["course"].(map[string]interface{})["title"])

	scores := map[string]float64{}
	for _, r := range recs {
		rec := r.(map[string]interface{})
		course := rec["course"].(map[string]interface{})
		scores[course["title"].(string)] = rec["matchCount"].(float64)
	}
	assert.Equal(t, float64(3), scores["Python for Data Science"])
	assert.Equal(t, float64(2), scores["Deep Learning"])
	assert.NotContains(t, scores, "Oil Painting")
	assert.NotContains(t, scores, "Watercolour Basics")
	assert.Equal(t, float64(1), result["page"])
	assert.Equal(t, float64(len(recs)), result["total"])
}

func TestRecommendationsDegradeWithoutCoursera(t *testing.T) {
	env := newTestEnv(t, newCourseraClient(t, true))
	manager := env.seedUser(t, "Manager", "manager@example.com", models.RoleManager)
	learner := env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)
	env.seedCourse(t, manager.ID, "Python for Data Science", "Data Science", "Free")
	saveProfile(t, env, learner, "python")

	resp, result := env.do(t, "GET", "/api/recommendations/"+learner.ID.String(), nil, learner.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	recs := result["recommendations"].([]interface{})
	require.Len(t, recs, 1)
	assert.Equal(t, "Learn Genie", recs[0].(map[string]interface{})["source"])
}

func TestRecommendationsPaging(t *testing.T) {
	env := newTestEnv(t, nil)
	manager := env.seedUser(t, "Manager", "manager@example.com", models.RoleManager)
	learner := env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)
	for _, title := range []string{"Go One", "Go Two", "Go Three"} {
		env.seedCourse(t, manager.ID, title, "Golang", "Free")
	}
	saveProfile(t, env, learner, "golang")

	resp, result := env.do(t, "GET", "/api/recommendations/"+learner.ID.String()+"?page=2&limit=2", nil, learner.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, result["recommendations"], 1)
	assert.Equal(t, float64(2), result["totalPages"])
	assert.Equal(t, float64(3), result["total"])
}

func TestRecommendationsWithoutProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	learner := env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)
	other := env.seedUser(t, "Other", "other@example.com", models.RoleLearner)

	resp, result := env.do(t, "GET", "/api/recommendations/"+learner.ID.String(), nil, learner.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, result["recommendations"])
	assert.Equal(t, float64(0), result["total"])

	resp, _ = env.do(t, "GET", "/api/recommendations/"+learner.ID.String(), nil, other.Token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

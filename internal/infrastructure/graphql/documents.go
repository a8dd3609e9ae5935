package graphql

// Operation documents sent to the GraphQL store. The text is the wire contract
// with the backend schema and must not drift.
const (
	CreateUserMutation = `
  mutation createUser(
    $userId: String!
    $name: String!
    $username: String!
    $email: String!
    $bio: String!
    $website: String!
    $profileImage: String!
    $phoneNumber: String!
  ) {
    insert_users(
      objects: {
        bio: $bio
        email: $email
        name: $name
        phone_number: $phoneNumber
        profile_image: $profileImage
        username: $username
        user_id: $userId
        website: $website
      }
    ) {
      affected_rows
    }
  }
`

	EditUserMutation = `
  mutation editUser(
    $id: uuid!
    $name: String!
    $username: String!
    $website: String!
    $bio: String!
    $email: String!
    $phoneNumber: String!
  ) {
    update_users(
      where: { id: { _eq: $id } }
      _set: {
        name: $name
        email: $email
        username: $username
        website: $website
        phone_number: $phoneNumber
        bio: $bio
      }
    ) {
      affected_rows
    }
  }
`

	EditUserAvatarMutation = `
  mutation editUserAvatar($id: uuid!, $profileImage: String!) {
    update_users(
      where: { id: { _eq: $id } }
      _set: { profile_image: $profileImage }
    ) {
      affected_rows
    }
  }
`

	CreatePostMutation = `
  mutation createPost(
    $userId: uuid!
    $media: String!
    $location: String!
    $caption: String!
  ) {
    insert_posts(
      objects: {
        user_id: $userId
        media: $media
        location: $location
        caption: $caption
      }
    ) {
      affected_rows
    }
  }
`

	LikePostMutation = `
  mutation likePost($postId: uuid!, $userId: uuid!) {
    insert_likes(objects: { post_id: $postId, user_id: $userId }) {
      affected_rows
    }
  }
`

	UnlikePostMutation = `
  mutation unlikePost($postId: uuid!, $userId: uuid!) {
    delete_likes(
      where: { post_id: { _eq: $postId }, user_id: { _eq: $userId } }
    ) {
      affected_rows
    }
  }
`

	SavePostMutation = `
  mutation savePost($postId: uuid!, $userId: uuid!) {
    insert_saved_posts(objects: { post_id: $postId, user_id: $userId }) {
      affected_rows
    }
  }
`

	UnsavePostMutation = `
  mutation unsavePost($postId: uuid!, $userId: uuid!) {
    delete_saved_posts(
      where: { post_id: { _eq: $postId }, user_id: { _eq: $userId } }
    ) {
      affected_rows
    }
  }
`

	CreateCommentMutation = `
mutation createComment($postId: uuid!, $userId: uuid!, $content: String!) {
  insert_comments(objects: {post_id: $postId, user_id: $userId, content: $content}) {
    affected_rows
  }
}`

	UserProfileIDQuery = `
  query userProfileId($userId: String!) {
    users(where: { user_id: { _eq: $userId } }) {
      id
    }
  }
`

	CheckIfUsernameTakenQuery = `
  query checkIfUsernameTaken($username: String!) {
    users(where: { username: { _eq: $username } }) {
      username
    }
  }
`
)
